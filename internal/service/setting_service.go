package service

import (
	"context"

	"gec-catalog/internal/model"
	"gec-catalog/internal/repository"

	"github.com/rs/zerolog"
)

// settingService implements SettingService.
type settingService struct {
	settingRepo repository.SettingRepository
	logger      zerolog.Logger
}

// NewSettingService creates a new setting service.
func NewSettingService(settingRepo repository.SettingRepository, logger zerolog.Logger) SettingService {
	return &settingService{
		settingRepo: settingRepo,
		logger:      logger.With().Str("service", "setting").Logger(),
	}
}

// ScrollingMessage returns the storefront banner message, falling back to
// the built-in default when none is stored.
func (s *settingService) ScrollingMessage(ctx context.Context) (string, error) {
	setting, err := s.settingRepo.Get(ctx, model.SettingScrollingMessage)
	if err != nil {
		return "", model.NewPersistenceError("get scrolling message", err)
	}

	if setting == nil {
		return model.DefaultScrollingMessage, nil
	}

	return setting.Value, nil
}

// UpdateScrollingMessage replaces the storefront banner message.
func (s *settingService) UpdateScrollingMessage(ctx context.Context, message string) error {
	if message == "" {
		return model.NewValidationError("Message is required")
	}

	if err := s.settingRepo.Upsert(ctx, model.SettingScrollingMessage, message); err != nil {
		return model.NewPersistenceError("update scrolling message", err)
	}

	s.logger.Info().Msg("scrolling message updated")

	return nil
}
