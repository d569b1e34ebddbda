package application

import (
	"fmt"
	"sort"
	"strings"
)

// NoMatchError reports that the supplied constraints filtered the store down
// to nothing. It carries the rejected constraint set so callers can see
// exactly what produced zero results.
type NoMatchError struct {
	Constraints map[string]any
}

func (e *NoMatchError) Error() string {
	names := make([]string, 0, len(e.Constraints))
	for name := range e.Constraints {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%v", name, e.Constraints[name]))
	}

	return fmt.Sprintf("no stored credentials match the constraints: %s", strings.Join(pairs, ", "))
}

// NoCredentialsForHostError reports a host-scoped lookup that found zero
// records for that host. Distinct from NoMatchError so callers keyed on a
// single host get a direct message.
type NoCredentialsForHostError struct {
	Host string
}

func (e *NoCredentialsForHostError) Error() string {
	return fmt.Sprintf("there are no saved credentials for host %q", e.Host)
}
