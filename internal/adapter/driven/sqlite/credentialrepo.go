package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/christophertubbs/redispass/internal/domain/model"
	"github.com/christophertubbs/redispass/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// credentialColumns lists the table columns in schema order; Load and Save
// both address columns through this one list so the two can never drift.
const credentialColumns = `host, port, username, password, db, retry_on_timeout, ` +
	`socket_timeout, socket_connect_timeout, socket_keepalive, decode_responses, ` +
	`encoding, encoding_errors, health_check_interval, client_name, ssl, ` +
	`ssl_keyfile, ssl_certfile, ssl_cert_reqs, ssl_ca_certs, ssl_check_hostname`

// CredentialRepo is the SQLite implementation of the CredentialStore port.
// Rows are stored plaintext; this is a convenience store for connection
// parameters, not a vault.
type CredentialRepo struct {
	db *DB
}

// NewCredentialRepo creates a new CredentialRepo on an open DB.
func NewCredentialRepo(db *DB) *CredentialRepo {
	return &CredentialRepo{db: db}
}

// Load returns all stored credentials in rowid order. The order is stable
// for an unchanged store, which the selector relies on for deterministic
// tie-breaks.
func (r *CredentialRepo) Load(ctx context.Context) ([]model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials ORDER BY rowid`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w: %w", driven.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var creds []model.Credential
	for rows.Next() {
		var (
			cred                 model.Credential
			username             sql.NullString
			password             sql.NullString
			socketTimeout        sql.NullFloat64
			socketConnectTimeout sql.NullFloat64
			socketKeepalive      sql.NullBool
			clientName           sql.NullString
			sslKeyfile           sql.NullString
			sslCertfile          sql.NullString
			sslCACerts           sql.NullString
		)
		if err := rows.Scan(
			&cred.Host, &cred.Port, &username, &password, &cred.DB,
			&cred.RetryOnTimeout, &socketTimeout, &socketConnectTimeout,
			&socketKeepalive, &cred.DecodeResponses, &cred.Encoding,
			&cred.EncodingErrors, &cred.HealthCheckInterval, &clientName,
			&cred.SSL, &sslKeyfile, &sslCertfile, &cred.SSLCertReqs,
			&sslCACerts, &cred.SSLCheckHostname,
		); err != nil {
			return nil, fmt.Errorf("scan credential: %w: %w", driven.ErrStorageUnavailable, err)
		}

		cred.Username = nullString(username)
		cred.Password = nullString(password)
		cred.SocketTimeout = nullFloat(socketTimeout)
		cred.SocketConnectTimeout = nullFloat(socketConnectTimeout)
		cred.SocketKeepalive = nullBool(socketKeepalive)
		cred.ClientName = nullString(clientName)
		cred.SSLKeyfile = nullString(sslKeyfile)
		cred.SSLCertfile = nullString(sslCertfile)
		cred.SSLCACerts = nullString(sslCACerts)

		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w: %w", driven.ErrStorageUnavailable, err)
	}

	return creds, nil
}

// Save upserts the credential on its natural key. The UNIQUE index on
// (host, username, password, port, db, ssl) makes INSERT OR REPLACE an
// idempotent single-statement upsert; there is no read-then-write window.
func (r *CredentialRepo) Save(ctx context.Context, cred model.Credential) error {
	query := `INSERT OR REPLACE INTO credentials (` + credentialColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query,
		cred.Host, cred.Port, cred.Username, cred.Password, cred.DB,
		cred.RetryOnTimeout, cred.SocketTimeout, cred.SocketConnectTimeout,
		cred.SocketKeepalive, cred.DecodeResponses, cred.Encoding,
		cred.EncodingErrors, cred.HealthCheckInterval, cred.ClientName,
		cred.SSL, cred.SSLKeyfile, cred.SSLCertfile, cred.SSLCertReqs,
		cred.SSLCACerts, cred.SSLCheckHostname,
	)
	if err != nil {
		return fmt.Errorf("save credential for %q: %w: %w", cred.Host, driven.ErrStorageUnavailable, err)
	}
	return nil
}

func nullString(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func nullBool(n sql.NullBool) *bool {
	if !n.Valid {
		return nil
	}
	return &n.Bool
}
