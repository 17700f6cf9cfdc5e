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

// folderService implements FolderService.
type folderService struct {
	folderRepo repository.FolderRepository
	logger     zerolog.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(folderRepo repository.FolderRepository, logger zerolog.Logger) FolderService {
	return &folderService{
		folderRepo: folderRepo,
		logger:     logger.With().Str("service", "folder").Logger(),
	}
}

// List retrieves all folders, newest first.
func (s *folderService) List(ctx context.Context) ([]model.Folder, error) {
	folders, err := s.folderRepo.GetAll(ctx)
	if err != nil {
		return nil, model.NewPersistenceError("list folders", err)
	}
	return folders, nil
}

// Create creates a folder, rejecting duplicate names. A missing identifier
// is filled server-side.
func (s *folderService) Create(ctx context.Context, req *model.FolderRequest) (*model.Folder, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, model.NewValidationError("Folder name is required")
	}

	name := strings.TrimSpace(req.Name)

	existing, err := s.folderRepo.GetByName(ctx, name)
	if err != nil {
		return nil, model.NewPersistenceError("check folder name", err)
	}
	if existing != nil {
		return nil, model.NewValidationError("A folder with this name already exists")
	}

	folder := &model.Folder{Name: name}
	if req.ID != nil {
		folder.ID = *req.ID
	} else {
		folder.ID = uuid.New()
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, model.NewPersistenceError("insert folder", err)
	}

	s.logger.Info().Str("folder_id", folder.ID.String()).Str("name", name).Msg("folder created")

	return folder, nil
}

// Rename changes a folder's name.
func (s *folderService) Rename(ctx context.Context, id uuid.UUID, name string) error {
	if strings.TrimSpace(name) == "" {
		return model.NewValidationError("Folder name is required")
	}

	if err := s.folderRepo.Rename(ctx, id, strings.TrimSpace(name)); err != nil {
		var nf *model.NotFoundError
		if errors.As(err, &nf) {
			return nf
		}
		return model.NewPersistenceError("rename folder", err)
	}

	s.logger.Info().Str("folder_id", id.String()).Msg("folder renamed")

	return nil
}

// Delete removes a folder, detaching its products.
func (s *folderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.folderRepo.Delete(ctx, id); err != nil {
		var nf *model.NotFoundError
		if errors.As(err, &nf) {
			return nf
		}
		return model.NewPersistenceError("delete folder", err)
	}

	s.logger.Info().Str("folder_id", id.String()).Msg("folder deleted")

	return nil
}
