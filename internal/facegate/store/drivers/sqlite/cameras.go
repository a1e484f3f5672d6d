package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/facegate/internal/facegate/domain"
	"github.com/aussiebroadwan/facegate/internal/facegate/store"
)

type camerasRepo struct {
	db     *sql.DB
	sealer store.Sealer
}

const cameraColumns = `id, name, url, username, password_sealed, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *camerasRepo) scan(row rowScanner) (domain.Camera, error) {
	var (
		c                domain.Camera
		sealed           []byte
		created, updated int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.URL, &c.Username, &sealed, &created, &updated); err != nil {
		return domain.Camera{}, err
	}

	if len(sealed) > 0 {
		pw, err := r.sealer.Open(sealed)
		if err != nil {
			return domain.Camera{}, fmt.Errorf("camera %s: unseal password: %w", c.ID, err)
		}
		c.Password = string(pw)
	}

	c.CreatedAt = time.UnixMilli(created).UTC()
	c.UpdatedAt = time.UnixMilli(updated).UTC()
	return c, nil
}

func (r *camerasRepo) GetCamera(ctx context.Context, id string) (domain.Camera, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cameraColumns+` FROM cameras WHERE id = ?`, id)
	c, err := r.scan(row)
	if err != nil {
		return domain.Camera{}, mapNotFound(err)
	}
	return c, nil
}

func (r *camerasRepo) UpsertCamera(ctx context.Context, c domain.Camera) error {
	var sealed []byte
	if c.Password != "" {
		var err error
		if sealed, err = r.sealer.Seal([]byte(c.Password)); err != nil {
			return fmt.Errorf("seal password: %w", err)
		}
	}

	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cameras (`+cameraColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name            = excluded.name,
			url             = excluded.url,
			username        = excluded.username,
			password_sealed = excluded.password_sealed,
			updated_at      = excluded.updated_at`,
		c.ID, c.Name, c.URL, c.Username, sealed, c.CreatedAt.UnixMilli(), c.UpdatedAt.UnixMilli(),
	)
	return err
}
