package service

import (
	"context"
	"errors"
	"strings"

	"gec-catalog/internal/model"
	"gec-catalog/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves all products with folder names and image data URLs.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, model.NewPersistenceError("list products", err)
	}

	for i := range products {
		products[i].ImageURL = model.ImageDataURL(products[i].ImageData, products[i].ImageContentType)
	}

	return products, nil
}

// Upload stores a single product with its image.
func (s *productService) Upload(ctx context.Context, upload *model.ProductUpload) (int64, error) {
	if err := validateUpload(upload); err != nil {
		s.logger.Warn().Err(err).Msg("product upload validation failed")
		return 0, err
	}

	id, err := s.productRepo.Create(ctx, upload)
	if err != nil {
		return 0, model.NewPersistenceError("insert product", err)
	}

	s.logger.Info().Int64("product_id", id).Str("title", upload.Title).Msg("product uploaded")

	return id, nil
}

// BulkUpload stores several products atomically.
func (s *productService) BulkUpload(ctx context.Context, uploads []model.ProductUpload) error {
	if len(uploads) == 0 {
		return model.NewValidationError("at least one product is required")
	}

	for i := range uploads {
		if err := validateUpload(&uploads[i]); err != nil {
			s.logger.Warn().Err(err).Int("index", i).Msg("bulk upload validation failed")
			return err
		}
	}

	if err := s.productRepo.CreateBatch(ctx, uploads); err != nil {
		return model.NewPersistenceError("bulk insert products", err)
	}

	s.logger.Info().Int("count", len(uploads)).Msg("products bulk uploaded")

	return nil
}

// Update modifies the mutable fields of a product.
func (s *productService) Update(ctx context.Context, id int64, upd *model.ProductUpdate) error {
	if upd == nil {
		return model.NewValidationError("update payload is required")
	}

	if strings.TrimSpace(upd.Title) == "" || strings.TrimSpace(upd.Description) == "" || upd.Hours == nil {
		return model.NewValidationError("Missing required fields: Title, Description, and Hours are required")
	}

	if *upd.Hours < 0 {
		return model.NewValidationError("Hours cannot be negative")
	}

	if err := s.productRepo.Update(ctx, id, upd); err != nil {
		var nf *model.NotFoundError
		if errors.As(err, &nf) {
			return nf
		}
		return model.NewPersistenceError("update product", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")

	return nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		var nf *model.NotFoundError
		if errors.As(err, &nf) {
			return nf
		}
		return model.NewPersistenceError("delete product", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return nil
}

// SetFolder assigns a product to a folder, or detaches it when folderID is nil.
func (s *productService) SetFolder(ctx context.Context, id int64, folderID *uuid.UUID) error {
	if err := s.productRepo.SetFolder(ctx, id, folderID); err != nil {
		var nf *model.NotFoundError
		if errors.As(err, &nf) {
			return nf
		}
		return model.NewPersistenceError("update product folder", err)
	}

	return nil
}

// validateUpload checks the shape of one product upload.
func validateUpload(upload *model.ProductUpload) error {
	if upload == nil {
		return model.NewValidationError("product is required")
	}

	if strings.TrimSpace(upload.Title) == "" {
		return model.NewValidationError("title is required")
	}

	if upload.Hours < 0 {
		return model.NewValidationError("hours cannot be negative")
	}

	if len(upload.ImageData) == 0 {
		return model.NewValidationError("No image uploaded")
	}

	return nil
}
