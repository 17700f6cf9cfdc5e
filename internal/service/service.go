package service

import (
	"context"

	"gec-catalog/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves all products with folder names and image data URLs.
	List(ctx context.Context) ([]model.Product, error)

	// Upload stores a single product with its image and returns the
	// generated identifier.
	Upload(ctx context.Context, upload *model.ProductUpload) (int64, error)

	// BulkUpload stores several products atomically.
	BulkUpload(ctx context.Context, uploads []model.ProductUpload) error

	// Update modifies the mutable fields of a product.
	Update(ctx context.Context, id int64, upd *model.ProductUpdate) error

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error

	// SetFolder assigns a product to a folder, or detaches it when folderID is nil.
	SetFolder(ctx context.Context, id int64, folderID *uuid.UUID) error
}

// FolderService defines operations for folder management.
type FolderService interface {
	// List retrieves all folders, newest first.
	List(ctx context.Context) ([]model.Folder, error)

	// Create creates a folder, rejecting duplicate names.
	Create(ctx context.Context, req *model.FolderRequest) (*model.Folder, error)

	// Rename changes a folder's name.
	Rename(ctx context.Context, id uuid.UUID, name string) error

	// Delete removes a folder, detaching its products.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines operations for order placement and presentation.
type OrderService interface {
	// CreateOrder validates the request, computes the total and writes the
	// order header plus all line items in one transaction.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// ListOrders retrieves all orders, newest first, each enriched with its
	// line items and denormalised product metadata.
	ListOrders(ctx context.Context) ([]model.OrderView, error)
}

// SettingService defines operations on site settings.
type SettingService interface {
	// ScrollingMessage returns the storefront banner message, falling back
	// to the built-in default when none is stored.
	ScrollingMessage(ctx context.Context) (string, error)

	// UpdateScrollingMessage replaces the storefront banner message.
	UpdateScrollingMessage(ctx context.Context, message string) error
}
