package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christophertubbs/redispass/internal/domain/model"
)

func TestParseConstraints(t *testing.T) {
	constraints, err := parseConstraints([]string{"host=db1", "port=6380", "ssl=true"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"host": "db1",
		"port": 6380,
		"ssl":  true,
	}, constraints)
}

func TestParseConstraints_ValueMayContainEquals(t *testing.T) {
	constraints, err := parseConstraints([]string{"password=a=b"})
	require.NoError(t, err)
	assert.Equal(t, "a=b", constraints["password"])
}

func TestParseConstraints_MissingEquals(t *testing.T) {
	_, err := parseConstraints([]string{"db1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field=value")
}

func TestParseConstraints_UnknownField(t *testing.T) {
	_, err := parseConstraints([]string{"hostname=db1"})

	var unknown *model.UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "hostname", unknown.Field)
}

func TestParseConstraints_BadValue(t *testing.T) {
	_, err := parseConstraints([]string{"port=high"})
	assert.Error(t, err)
}

func TestPrintCredential_MasksPasswordAndShowsNil(t *testing.T) {
	password := "hunter2"
	cred := model.DefaultCredential()
	cred.Password = &password

	var out strings.Builder
	printCredential(&out, cred)

	assert.Contains(t, out.String(), "password = ********")
	assert.NotContains(t, out.String(), "hunter2")
	assert.Contains(t, out.String(), "username = none")
	assert.Contains(t, out.String(), "host = localhost")
}
