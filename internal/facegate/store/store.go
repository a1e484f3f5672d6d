package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/facegate/internal/facegate/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface implemented by the drivers.
type Store interface {
	Cameras() Cameras

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	Close() error
}

type Cameras interface {
	// GetCamera returns ErrNotFound for an unknown id.
	GetCamera(ctx context.Context, id string) (domain.Camera, error)

	// UpsertCamera inserts the camera or replaces every field of an existing
	// one except CreatedAt.
	UpsertCamera(ctx context.Context, c domain.Camera) error
}

// Sealer protects camera passwords at rest.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}
