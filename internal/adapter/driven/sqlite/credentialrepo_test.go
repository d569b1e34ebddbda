package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christophertubbs/redispass/internal/domain/model"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func TestCredentialRepo_LoadEmpty(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t))

	creds, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, creds)
}

func TestCredentialRepo_SaveAndLoadRoundTrip(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t))
	ctx := context.Background()

	cred := model.DefaultCredential()
	cred.Host = "db1.internal"
	cred.Port = 6380
	cred.Username = strPtr("app")
	cred.Password = strPtr("hunter2")
	cred.DB = 3
	cred.RetryOnTimeout = true
	cred.SocketTimeout = floatPtr(2.5)
	cred.SocketKeepalive = boolPtr(true)
	cred.ClientName = strPtr("reporting")
	cred.SSL = true
	cred.SSLCACerts = strPtr("/etc/redis/ca.pem")

	require.NoError(t, repo.Save(ctx, cred))

	creds, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, cred, creds[0])
}

func TestCredentialRepo_NullableFieldsSurviveAsNil(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, model.DefaultCredential()))

	creds, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Nil(t, creds[0].Username)
	assert.Nil(t, creds[0].Password)
	assert.Nil(t, creds[0].SocketTimeout)
	assert.Nil(t, creds[0].SocketKeepalive)
	assert.Equal(t, model.DefaultCredential(), creds[0])
}

func TestCredentialRepo_SaveIsIdempotentOnNaturalKey(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t))
	ctx := context.Background()

	cred := model.DefaultCredential()
	cred.Host = "db1"
	cred.Password = strPtr("secret")

	require.NoError(t, repo.Save(ctx, cred))
	require.NoError(t, repo.Save(ctx, cred))

	creds, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, creds, 1, "saving the same logical credential twice must not duplicate it")
}

func TestCredentialRepo_UpsertReplacesNonKeyFields(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t))
	ctx := context.Background()

	cred := model.DefaultCredential()
	cred.Host = "db1"
	require.NoError(t, repo.Save(ctx, cred))

	// Same natural key, different non-key field.
	cred.ClientName = strPtr("reporting")
	require.NoError(t, repo.Save(ctx, cred))

	creds, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	require.NotNil(t, creds[0].ClientName)
	assert.Equal(t, "reporting", *creds[0].ClientName)
}

func TestCredentialRepo_DistinctNaturalKeysCoexist(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t))
	ctx := context.Background()

	first := model.DefaultCredential()
	first.Host = "db1"

	second := first
	second.DB = 1

	third := first
	third.SSL = true

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, third))

	creds, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, creds, 3)
}

func TestCredentialRepo_LoadOrderIsStable(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t))
	ctx := context.Background()

	hosts := []string{"db1", "db2", "db3"}
	for _, host := range hosts {
		cred := model.DefaultCredential()
		cred.Host = host
		require.NoError(t, repo.Save(ctx, cred))
	}

	for i := 0; i < 3; i++ {
		creds, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, creds, 3)
		for j, host := range hosts {
			assert.Equal(t, host, creds[j].Host)
		}
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, DefaultFilename))
}
