package repository

import (
	"context"

	"gec-catalog/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with their folder names, newest first.
	GetAll(ctx context.Context) ([]model.Product, error)

	// Create inserts a single product and returns its generated identifier.
	Create(ctx context.Context, upload *model.ProductUpload) (int64, error)

	// CreateBatch inserts several products atomically.
	CreateBatch(ctx context.Context, uploads []model.ProductUpload) error

	// Update modifies the mutable fields of a product.
	Update(ctx context.Context, id int64, upd *model.ProductUpdate) error

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error

	// SetFolder assigns a product to a folder, or detaches it when folderID is nil.
	SetFolder(ctx context.Context, id int64, folderID *uuid.UUID) error
}

// FolderRepository defines the interface for folder data access operations.
type FolderRepository interface {
	// GetAll retrieves all folders, newest first.
	GetAll(ctx context.Context) ([]model.Folder, error)

	// GetByName retrieves a folder by its exact name. Returns nil when absent.
	GetByName(ctx context.Context, name string) (*model.Folder, error)

	// Create inserts a new folder.
	Create(ctx context.Context, folder *model.Folder) error

	// Rename changes a folder's name.
	Rename(ctx context.Context, id uuid.UUID, name string) error

	// Delete detaches the folder's products and removes the folder, atomically.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts the order header within the provided transaction and
	// fills in the store-generated identifier.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts line items within the provided transaction,
	// preserving input order.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetAll retrieves all order headers, newest first.
	GetAll(ctx context.Context) ([]model.Order, error)

	// GetItemDetails retrieves the line items of the given orders joined with
	// product title and image columns, grouped by order identifier.
	GetItemDetails(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItemDetail, error)
}

// SettingRepository defines the interface for site-setting access.
type SettingRepository interface {
	// Get retrieves a setting by key. Returns nil when the key is absent.
	Get(ctx context.Context, key string) (*model.SiteSetting, error)

	// Upsert inserts or replaces the value for a key.
	Upsert(ctx context.Context, key, value string) error
}
