package model

import (
	"fmt"
	"strconv"
)

// UnknownFieldError reports a constraint or assignment that references a
// field name the credential schema does not define.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown credential field %q", e.Field)
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
	kindBool
)

// Field describes one credential field: its wire name, default value, and
// how to read, write, and parse it. The schema is declared once in the
// fields table below and reused for specificity, constraint matching,
// parameter maps, and CLI input; there is no runtime reflection.
type Field struct {
	name         string
	kind         fieldKind
	nullable     bool
	defaultValue any
	get          func(Credential) any
	set          func(*Credential, any)
}

// Name returns the field's schema name (also its storage column name).
func (f Field) Name() string { return f.name }

// Default returns the field's documented default value, nil for nullable
// fields.
func (f Field) Default() any { return f.defaultValue }

// Value reads the field from a credential. Nil pointer fields yield nil;
// everything else yields the plain string/int/float64/bool value.
func (f Field) Value(c Credential) any { return f.get(c) }

// Set writes a value into the credential, coercing compatible numeric types
// first. Nil is accepted only for nullable fields.
func (f Field) Set(c *Credential, value any) error {
	normalized, err := f.normalize(value)
	if err != nil {
		return err
	}
	f.set(c, normalized)
	return nil
}

// Parse converts raw string input (CLI arguments, for example) into the
// field's typed value. Nil-valued fields cannot be expressed this way; a
// parsed value is always concrete.
func (f Field) Parse(raw string) (any, error) {
	switch f.kind {
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %q is not an integer", f.name, raw)
		}
		return n, nil
	case kindFloat:
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q: %q is not a number", f.name, raw)
		}
		return x, nil
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %q is not a boolean", f.name, raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}

// normalize coerces a caller-supplied value into the field's canonical type
// so that interface equality against Value is meaningful (callers may hand
// an int64 where the schema says int, or an int where it says float).
func (f Field) normalize(value any) (any, error) {
	if value == nil {
		if f.nullable {
			return nil, nil
		}
		return nil, fmt.Errorf("field %q is not nullable", f.name)
	}

	switch f.kind {
	case kindString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case kindInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			if v == float64(int(v)) {
				return int(v), nil
			}
		}
	case kindFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		}
	case kindBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	}

	return nil, fmt.Errorf("field %q: incompatible value %v (%T)", f.name, value, value)
}

func stringField(name, def string, get func(Credential) string, set func(*Credential, string)) Field {
	return Field{
		name:         name,
		kind:         kindString,
		defaultValue: def,
		get:          func(c Credential) any { return get(c) },
		set:          func(c *Credential, v any) { set(c, v.(string)) },
	}
}

func nullStringField(name string, get func(Credential) *string, set func(*Credential, *string)) Field {
	return Field{
		name:     name,
		kind:     kindString,
		nullable: true,
		get: func(c Credential) any {
			if p := get(c); p != nil {
				return *p
			}
			return nil
		},
		set: func(c *Credential, v any) {
			if v == nil {
				set(c, nil)
				return
			}
			s := v.(string)
			set(c, &s)
		},
	}
}

func intField(name string, def int, get func(Credential) int, set func(*Credential, int)) Field {
	return Field{
		name:         name,
		kind:         kindInt,
		defaultValue: def,
		get:          func(c Credential) any { return get(c) },
		set:          func(c *Credential, v any) { set(c, v.(int)) },
	}
}

func boolField(name string, def bool, get func(Credential) bool, set func(*Credential, bool)) Field {
	return Field{
		name:         name,
		kind:         kindBool,
		defaultValue: def,
		get:          func(c Credential) any { return get(c) },
		set:          func(c *Credential, v any) { set(c, v.(bool)) },
	}
}

func nullFloatField(name string, get func(Credential) *float64, set func(*Credential, *float64)) Field {
	return Field{
		name:     name,
		kind:     kindFloat,
		nullable: true,
		get: func(c Credential) any {
			if p := get(c); p != nil {
				return *p
			}
			return nil
		},
		set: func(c *Credential, v any) {
			if v == nil {
				set(c, nil)
				return
			}
			x := v.(float64)
			set(c, &x)
		},
	}
}

func nullBoolField(name string, get func(Credential) *bool, set func(*Credential, *bool)) Field {
	return Field{
		name:     name,
		kind:     kindBool,
		nullable: true,
		get: func(c Credential) any {
			if p := get(c); p != nil {
				return *p
			}
			return nil
		},
		set: func(c *Credential, v any) {
			if v == nil {
				set(c, nil)
				return
			}
			b := v.(bool)
			set(c, &b)
		},
	}
}

// fields is the schema, in storage column order. Load order elsewhere in the
// system follows this declaration order.
var fields = []Field{
	stringField("host", "localhost",
		func(c Credential) string { return c.Host },
		func(c *Credential, v string) { c.Host = v }),
	intField("port", 6379,
		func(c Credential) int { return c.Port },
		func(c *Credential, v int) { c.Port = v }),
	nullStringField("username",
		func(c Credential) *string { return c.Username },
		func(c *Credential, v *string) { c.Username = v }),
	nullStringField("password",
		func(c Credential) *string { return c.Password },
		func(c *Credential, v *string) { c.Password = v }),
	intField("db", 0,
		func(c Credential) int { return c.DB },
		func(c *Credential, v int) { c.DB = v }),
	boolField("retry_on_timeout", false,
		func(c Credential) bool { return c.RetryOnTimeout },
		func(c *Credential, v bool) { c.RetryOnTimeout = v }),
	nullFloatField("socket_timeout",
		func(c Credential) *float64 { return c.SocketTimeout },
		func(c *Credential, v *float64) { c.SocketTimeout = v }),
	nullFloatField("socket_connect_timeout",
		func(c Credential) *float64 { return c.SocketConnectTimeout },
		func(c *Credential, v *float64) { c.SocketConnectTimeout = v }),
	nullBoolField("socket_keepalive",
		func(c Credential) *bool { return c.SocketKeepalive },
		func(c *Credential, v *bool) { c.SocketKeepalive = v }),
	boolField("decode_responses", false,
		func(c Credential) bool { return c.DecodeResponses },
		func(c *Credential, v bool) { c.DecodeResponses = v }),
	stringField("encoding", "utf-8",
		func(c Credential) string { return c.Encoding },
		func(c *Credential, v string) { c.Encoding = v }),
	stringField("encoding_errors", "strict",
		func(c Credential) string { return c.EncodingErrors },
		func(c *Credential, v string) { c.EncodingErrors = v }),
	intField("health_check_interval", 0,
		func(c Credential) int { return c.HealthCheckInterval },
		func(c *Credential, v int) { c.HealthCheckInterval = v }),
	nullStringField("client_name",
		func(c Credential) *string { return c.ClientName },
		func(c *Credential, v *string) { c.ClientName = v }),
	boolField("ssl", false,
		func(c Credential) bool { return c.SSL },
		func(c *Credential, v bool) { c.SSL = v }),
	nullStringField("ssl_keyfile",
		func(c Credential) *string { return c.SSLKeyfile },
		func(c *Credential, v *string) { c.SSLKeyfile = v }),
	nullStringField("ssl_certfile",
		func(c Credential) *string { return c.SSLCertfile },
		func(c *Credential, v *string) { c.SSLCertfile = v }),
	stringField("ssl_cert_reqs", "required",
		func(c Credential) string { return c.SSLCertReqs },
		func(c *Credential, v string) { c.SSLCertReqs = v }),
	nullStringField("ssl_ca_certs",
		func(c Credential) *string { return c.SSLCACerts },
		func(c *Credential, v *string) { c.SSLCACerts = v }),
	boolField("ssl_check_hostname", false,
		func(c Credential) bool { return c.SSLCheckHostname },
		func(c *Credential, v bool) { c.SSLCheckHostname = v }),
}

var fieldIndex = func() map[string]Field {
	idx := make(map[string]Field, len(fields))
	for _, f := range fields {
		idx[f.name] = f
	}
	return idx
}()

// Fields returns the credential schema in declaration order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldByName looks up a schema field, returning an UnknownFieldError for
// names outside the schema.
func FieldByName(name string) (Field, error) {
	f, ok := fieldIndex[name]
	if !ok {
		return Field{}, &UnknownFieldError{Field: name}
	}
	return f, nil
}
