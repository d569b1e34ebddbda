package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/christophertubbs/redispass/internal/domain/model"
)

// parseConstraints converts field=value arguments into a typed constraint
// map, parsing each value through the field's codec. Unknown field names and
// unparseable values fail the whole set.
func parseConstraints(args []string) (map[string]any, error) {
	constraints := make(map[string]any, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid constraint %q (want field=value)", arg)
		}

		field, err := model.FieldByName(name)
		if err != nil {
			return nil, err
		}
		value, err := field.Parse(raw)
		if err != nil {
			return nil, err
		}
		constraints[name] = value
	}
	return constraints, nil
}

// printCredential writes the credential field by field in schema order.
// The password value is masked; unset nullable fields print as "none".
func printCredential(w io.Writer, cred model.Credential) {
	for _, field := range model.Fields() {
		fmt.Fprintf(w, "%s = %s\n", field.Name(), displayValue(field, cred))
	}
}

func displayValue(field model.Field, cred model.Credential) string {
	value := field.Value(cred)
	if value == nil {
		return "none"
	}
	if field.Name() == "password" {
		return "********"
	}
	return fmt.Sprintf("%v", value)
}
