package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// migration is one versioned schema change. Versions are applied in order,
// each inside its own transaction, and recorded in schema_migrations so a
// restart never re-runs them.
type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create catalog tables",
		sql: `
			CREATE TABLE IF NOT EXISTS folders (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL UNIQUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			CREATE TABLE IF NOT EXISTS products (
				id BIGSERIAL PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				type TEXT NOT NULL DEFAULT '',
				subcategory TEXT NOT NULL DEFAULT '',
				hours INTEGER NOT NULL CHECK (hours >= 0),
				image_data BYTEA,
				image_name TEXT NOT NULL DEFAULT '',
				image_content_type TEXT NOT NULL DEFAULT '',
				hours_visible BOOLEAN NOT NULL DEFAULT TRUE,
				folder_id UUID REFERENCES folders(id) ON DELETE SET NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
		`,
	},
	{
		version: 2,
		name:    "create order tables",
		sql: `
			CREATE TABLE IF NOT EXISTS orders (
				id BIGSERIAL PRIMARY KEY,
				customer_email TEXT NOT NULL,
				customer_name TEXT NOT NULL,
				branch TEXT NOT NULL,
				delivery_date DATE NOT NULL,
				shared_link TEXT,
				remarks TEXT,
				total_hours INTEGER NOT NULL CHECK (total_hours >= 0),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			CREATE TABLE IF NOT EXISTS order_items (
				id BIGSERIAL PRIMARY KEY,
				order_id BIGINT NOT NULL REFERENCES orders(id),
				product_id BIGINT NOT NULL REFERENCES products(id),
				quantity INTEGER NOT NULL CHECK (quantity > 0),
				hours INTEGER NOT NULL CHECK (hours >= 0)
			);

			CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		`,
	},
	{
		version: 3,
		name:    "create site settings",
		sql: `
			CREATE TABLE IF NOT EXISTS site_settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			INSERT INTO site_settings (key, value)
			VALUES ('scrolling_message', 'Welcome to GEC - Global Engineering Center. We provide quality engineering services.')
			ON CONFLICT (key) DO NOTHING;
		`,
	},
}

// Migrate applies all pending migrations. It must run before the HTTP
// server starts serving requests.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var current int
	err = pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read current schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		if err := apply(ctx, pool, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}

		logger.Info().
			Int("version", m.version).
			Str("name", m.name).
			Msg("migration applied")
	}

	return nil
}

func apply(ctx context.Context, pool *pgxpool.Pool, m migration) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op once the transaction has committed.
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, m.sql); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
		m.version, m.name,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
