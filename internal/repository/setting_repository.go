package repository

import (
	"context"
	"errors"
	"fmt"

	"gec-catalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// settingRepository implements the SettingRepository interface using PostgreSQL.
type settingRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSettingRepository creates a new PostgreSQL-backed setting repository.
func NewSettingRepository(pool *pgxpool.Pool, logger zerolog.Logger) SettingRepository {
	return &settingRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "setting").Logger(),
	}
}

// Get retrieves a setting by key. Returns nil when the key is absent.
func (r *settingRepository) Get(ctx context.Context, key string) (*model.SiteSetting, error) {
	var s model.SiteSetting
	err := r.pool.QueryRow(ctx,
		`SELECT key, value, updated_at FROM site_settings WHERE key = $1`,
		key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("key", key).Msg("failed to query setting")
		return nil, fmt.Errorf("failed to query setting: %w", err)
	}
	return &s, nil
}

// Upsert inserts or replaces the value for a key.
func (r *settingRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to upsert setting")
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	r.logger.Debug().Str("key", key).Msg("setting upserted")

	return nil
}
