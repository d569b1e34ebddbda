// Package sqlite is the embedded-storage adapter: a single SQLite file in
// the user's home directory holding saved credentials. Open/read/write
// failures wrap driven.ErrStorageUnavailable.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/christophertubbs/redispass/internal/domain/port/driven"
)

// DefaultFilename is the store's filename under the user's home directory.
const DefaultFilename = ".redis_pass.db"

// DefaultPath resolves the default store location, ~/.redis_pass.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w: %w", driven.ErrStorageUnavailable, err)
	}
	return filepath.Join(home, DefaultFilename), nil
}

// DB provides dual reader/writer database connections with WAL mode enabled.
// The writer is limited to a single connection to avoid "database is locked"
// errors; the reader pool allows up to 4 concurrent readers. Multiple
// processes may share the store file; SQLite's own locking plus the busy
// timeout provide the isolation, this layer holds no transaction across
// calls.
type DB struct {
	Writer *sql.DB
	Reader *sql.DB
	path   string
}

// NewDB opens the credential store at dbPath with WAL mode, a busy timeout,
// and synchronous NORMAL. The file is created if it does not exist.
func NewDB(dbPath string) (*DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		dbPath,
	)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w: %w", driven.ErrStorageUnavailable, err)
	}
	writer.SetMaxOpenConns(1)

	if err := writer.Ping(); err != nil {
		writer.Close()
		return nil, fmt.Errorf("ping writer: %w: %w", driven.ErrStorageUnavailable, err)
	}

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w: %w", driven.ErrStorageUnavailable, err)
	}
	reader.SetMaxOpenConns(4)

	if err := reader.Ping(); err != nil {
		reader.Close()
		writer.Close()
		return nil, fmt.Errorf("ping reader: %w: %w", driven.ErrStorageUnavailable, err)
	}

	return &DB{
		Writer: writer,
		Reader: reader,
		path:   dbPath,
	}, nil
}

// Close closes both reader and writer connections. Returns the first error
// encountered.
func (db *DB) Close() error {
	var firstErr error

	if err := db.Reader.Close(); err != nil {
		firstErr = fmt.Errorf("close reader: %w", err)
	}

	if err := db.Writer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close writer: %w", err)
	}

	return firstErr
}
