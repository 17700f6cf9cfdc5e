package repository

import (
	"context"
	"errors"
	"fmt"

	"gec-catalog/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// folderRepository implements the FolderRepository interface using PostgreSQL.
type folderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFolderRepository creates a new PostgreSQL-backed folder repository.
func NewFolderRepository(pool *pgxpool.Pool, logger zerolog.Logger) FolderRepository {
	return &folderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "folder").Logger(),
	}
}

// GetAll retrieves all folders, newest first.
func (r *folderRepository) GetAll(ctx context.Context) ([]model.Folder, error) {
	query := `
		SELECT id, name, created_at
		FROM folders
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query folders")
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	var folders []model.Folder
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan folder row")
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, f)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating folder rows")
		return nil, fmt.Errorf("error iterating folders: %w", err)
	}

	return folders, nil
}

// GetByName retrieves a folder by its exact name. Returns nil when absent.
func (r *folderRepository) GetByName(ctx context.Context, name string) (*model.Folder, error) {
	var f model.Folder
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM folders WHERE name = $1`,
		name,
	).Scan(&f.ID, &f.Name, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("name", name).Msg("failed to query folder by name")
		return nil, fmt.Errorf("failed to query folder by name: %w", err)
	}
	return &f, nil
}

// Create inserts a new folder.
func (r *folderRepository) Create(ctx context.Context, folder *model.Folder) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO folders (id, name) VALUES ($1, $2) RETURNING created_at`,
		folder.ID, folder.Name,
	).Scan(&folder.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", folder.Name).Msg("failed to create folder")
		return fmt.Errorf("failed to create folder: %w", err)
	}

	r.logger.Debug().Str("folder_id", folder.ID.String()).Str("name", folder.Name).Msg("folder created")

	return nil
}

// Rename changes a folder's name.
func (r *folderRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE folders SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		r.logger.Error().Err(err).Str("folder_id", id.String()).Msg("failed to rename folder")
		return fmt.Errorf("failed to rename folder: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError("folder", id.String())
	}

	return nil
}

// Delete detaches the folder's products and removes the folder in one
// transaction, so readers never see products pointing at a missing folder.
func (r *folderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op once the transaction has committed.
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE products SET folder_id = NULL WHERE folder_id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("folder_id", id.String()).Msg("failed to detach products from folder")
		return fmt.Errorf("failed to detach products from folder: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("folder_id", id.String()).Msg("failed to delete folder")
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError("folder", id.String())
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("folder_id", id.String()).Msg("failed to commit folder deletion")
		return fmt.Errorf("failed to commit folder deletion: %w", err)
	}

	r.logger.Debug().Str("folder_id", id.String()).Msg("folder deleted")

	return nil
}
