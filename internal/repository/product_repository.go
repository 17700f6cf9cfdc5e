package repository

import (
	"context"
	"fmt"

	"gec-catalog/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves all products with their folder names, newest first.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT p.id, p.title, p.description, p.category, p.type, p.subcategory, p.hours,
		       p.image_data, p.image_name, p.image_content_type,
		       p.hours_visible, p.folder_id, f.name, p.created_at
		FROM products p
		LEFT JOIN folders f ON p.folder_id = f.id
		ORDER BY p.created_at DESC, p.id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Category,
			&p.Type,
			&p.Subcategory,
			&p.Hours,
			&p.ImageData,
			&p.ImageName,
			&p.ImageContentType,
			&p.HoursVisible,
			&p.FolderID,
			&p.FolderName,
			&p.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Create inserts a single product and returns its generated identifier.
func (r *productRepository) Create(ctx context.Context, upload *model.ProductUpload) (int64, error) {
	query := `
		INSERT INTO products (title, description, category, type, subcategory, hours, image_data, image_name, image_content_type, folder_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		upload.Title,
		upload.Description,
		upload.Category,
		upload.Type,
		upload.Subcategory,
		upload.Hours,
		upload.ImageData,
		upload.ImageName,
		upload.ImageContentType,
		upload.FolderID,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("title", upload.Title).Msg("failed to create product")
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", id).Str("title", upload.Title).Msg("product created")

	return id, nil
}

// CreateBatch inserts several products in one transaction so a bulk upload
// is all-or-nothing.
func (r *productRepository) CreateBatch(ctx context.Context, uploads []model.ProductUpload) error {
	if len(uploads) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op once the transaction has committed.
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO products (title, description, category, type, subcategory, hours, image_data, image_name, image_content_type, folder_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	batch := &pgx.Batch{}
	for _, u := range uploads {
		batch.Queue(query,
			u.Title, u.Description, u.Category, u.Type, u.Subcategory,
			u.Hours, u.ImageData, u.ImageName, u.ImageContentType, u.FolderID,
		)
	}

	results := tx.SendBatch(ctx, batch)

	for i := 0; i < len(uploads); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			r.logger.Error().Err(err).Str("title", uploads[i].Title).Msg("failed to create product in batch")
			return fmt.Errorf("failed to create product %q: %w", uploads[i].Title, err)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit bulk product insert")
		return fmt.Errorf("failed to commit bulk product insert: %w", err)
	}

	r.logger.Debug().Int("count", len(uploads)).Msg("products created in batch")

	return nil
}

// Update modifies the mutable fields of a product.
func (r *productRepository) Update(ctx context.Context, id int64, upd *model.ProductUpdate) error {
	query := `
		UPDATE products
		SET title = $1,
		    description = $2,
		    hours = $3,
		    hours_visible = COALESCE($4, hours_visible),
		    folder_id = $5
		WHERE id = $6
	`

	var folderID *uuid.UUID
	if upd.FolderID != nil && *upd.FolderID != "" {
		parsed, err := uuid.Parse(*upd.FolderID)
		if err != nil {
			return fmt.Errorf("invalid folder id %q: %w", *upd.FolderID, err)
		}
		folderID = &parsed
	}

	tag, err := r.pool.Exec(ctx, query, upd.Title, upd.Description, upd.Hours, upd.HoursVisible, folderID, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError("product", fmt.Sprintf("%d", id))
	}

	r.logger.Debug().Int64("product_id", id).Msg("product updated")

	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError("product", fmt.Sprintf("%d", id))
	}

	r.logger.Debug().Int64("product_id", id).Msg("product deleted")

	return nil
}

// SetFolder assigns a product to a folder, or detaches it when folderID is nil.
func (r *productRepository) SetFolder(ctx context.Context, id int64, folderID *uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET folder_id = $1 WHERE id = $2`, folderID, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product folder")
		return fmt.Errorf("failed to update product folder: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError("product", fmt.Sprintf("%d", id))
	}

	return nil
}
