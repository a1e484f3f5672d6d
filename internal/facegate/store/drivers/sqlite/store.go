package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aussiebroadwan/facegate/internal/facegate/store"
	_ "modernc.org/sqlite"
)

type Store struct {
	db     *sql.DB
	sealer store.Sealer
}

var _ store.Store = (*Store)(nil)

// NewStore opens the database at dsn. Camera passwords are sealed with
// sealer before they are written.
func NewStore(dsn string, sealer store.Sealer) (*Store, error) {
	if sealer == nil {
		return nil, errors.New("sqlite: nil sealer")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One connection: SQLite has a single writer anyway, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, sealer: sealer}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Cameras() store.Cameras { return &camerasRepo{db: s.db, sealer: s.sealer} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// DB exposes the underlying handle for tests and diagnostics.
func (s *Store) DB() *sql.DB { return s.db }
