package driven

import (
	"context"
	"errors"

	"github.com/christophertubbs/redispass/internal/domain/model"
)

// ErrConnectionFailed is returned (wrapped) when the connector rejected the
// resolved credential: unreachable host, bad auth, TLS failure. The core
// propagates it unchanged and never retries.
var ErrConnectionFailed = errors.New("connection failed")

// Connection is a live handle produced by a Connector.
type Connection interface {
	// Ping verifies the connection is alive and authenticated.
	Ping(ctx context.Context) error

	// Credential reports the effective parameters the connection was opened
	// with, so an open connection can be registered back into the store.
	Credential() model.Credential

	Close() error
}

// Connector is the external collaborator that turns a resolved parameter map
// into a live connection. Parameter names follow the credential schema; a
// nil value means "use the connector's default". Connector-specific failures
// are wrapped in ErrConnectionFailed and otherwise propagated as-is.
type Connector interface {
	Connect(ctx context.Context, params map[string]any) (Connection, error)
}
