// Package driven declares the outbound ports of the credential manager:
// persistence and connection construction. Adapters implement these against
// SQLite and go-redis; sentinels for adapter-level failures live beside the
// interfaces they belong to.
package driven

import (
	"context"
	"errors"

	"github.com/christophertubbs/redispass/internal/domain/model"
)

// ErrStorageUnavailable is returned (wrapped, with context) when the
// persistent store could not be opened, read, or written. The core never
// retries; callers decide what to do.
var ErrStorageUnavailable = errors.New("credential store unavailable")

// CredentialStore defines the driven port for credential persistence.
type CredentialStore interface {
	// Load returns every stored credential in stable load order. The order
	// itself carries no meaning, but repeated calls against unchanged
	// storage must return the same order (selection tie-breaks depend on it).
	Load(ctx context.Context) ([]model.Credential, error)

	// Save upserts the credential on its natural key
	// (host, username, password, port, db, ssl): saving the same logical
	// credential twice updates the existing row rather than duplicating it.
	Save(ctx context.Context, cred model.Credential) error
}
