// Package model holds the credential record and its statically declared
// field schema. The package is dependency-free; persistence and connection
// concerns live behind the driven ports.
package model

// Credential holds the parameters needed to form a Redis connection.
// Every field has a documented default; "specificity" measures how far a
// credential deviates from those defaults. Nil pointer fields mean "use the
// connector's default" and survive the round trip through storage as NULL.
//
// The natural key for upsert purposes is (Host, Username, Password, Port,
// DB, SSL); the store enforces uniqueness on that tuple.
type Credential struct {
	Host                 string
	Port                 int
	Username             *string
	Password             *string
	DB                   int
	RetryOnTimeout       bool
	SocketTimeout        *float64 // seconds
	SocketConnectTimeout *float64 // seconds
	SocketKeepalive      *bool
	DecodeResponses      bool
	Encoding             string
	EncodingErrors       string
	HealthCheckInterval  int // seconds
	ClientName           *string
	SSL                  bool
	SSLKeyfile           *string
	SSLCertfile          *string
	SSLCertReqs          string
	SSLCACerts           *string
	SSLCheckHostname     bool
}

// DefaultCredential returns a credential with every field at its documented
// default: an unauthenticated connection to localhost:6379, database 0.
func DefaultCredential() Credential {
	return Credential{
		Host:           "localhost",
		Port:           6379,
		Encoding:       "utf-8",
		EncodingErrors: "strict",
		SSLCertReqs:    "required",
	}
}

// Specificity reports how customized the credential is: the fraction of
// fields whose value differs from the documented default. A default
// credential scores 0.0, a fully customized one 1.0. Pure and deterministic.
func (c Credential) Specificity() float64 {
	if len(fields) == 0 {
		return 0.0
	}

	changed := 0
	for _, f := range fields {
		if f.get(c) != f.defaultValue {
			changed++
		}
	}

	return float64(changed) / float64(len(fields))
}

// ConnectionParams returns the credential as a flat field-name → value map
// suitable for handing to a Connector, merged with caller overrides.
// Overrides win on conflict and are not validated against the schema; a nil
// value means "use the connector default".
func (c Credential) ConnectionParams(overrides map[string]any) map[string]any {
	params := make(map[string]any, len(fields)+len(overrides))
	for _, f := range fields {
		params[f.name] = f.get(c)
	}
	for name, value := range overrides {
		params[name] = value
	}
	return params
}

// Matches reports whether the credential satisfies every given constraint by
// exact value equality. A constraint name not present in the schema returns
// an UnknownFieldError before any comparison.
func (c Credential) Matches(constraints map[string]any) (bool, error) {
	for name, want := range constraints {
		f, err := FieldByName(name)
		if err != nil {
			return false, err
		}
		normalized, err := f.normalize(want)
		if err != nil {
			return false, err
		}
		if f.get(c) != normalized {
			return false, nil
		}
	}
	return true, nil
}
