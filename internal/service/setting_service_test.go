package service

import (
	"context"
	"testing"
	"time"

	"gec-catalog/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSettingRepository is a mock implementation of SettingRepository.
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Get(ctx context.Context, key string) (*model.SiteSetting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteSetting), args.Error(1)
}

func (m *MockSettingRepository) Upsert(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func TestSettingService_ScrollingMessage(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("returns stored value", func(t *testing.T) {
		mockRepo := new(MockSettingRepository)
		svc := NewSettingService(mockRepo, logger)

		mockRepo.On("Get", ctx, model.SettingScrollingMessage).
			Return(&model.SiteSetting{Key: model.SettingScrollingMessage, Value: "Closed for maintenance", UpdatedAt: time.Now()}, nil)

		msg, err := svc.ScrollingMessage(ctx)

		require.NoError(t, err)
		assert.Equal(t, "Closed for maintenance", msg)
	})

	t.Run("falls back to default when absent", func(t *testing.T) {
		mockRepo := new(MockSettingRepository)
		svc := NewSettingService(mockRepo, logger)

		mockRepo.On("Get", ctx, model.SettingScrollingMessage).Return(nil, nil)

		msg, err := svc.ScrollingMessage(ctx)

		require.NoError(t, err)
		assert.Equal(t, model.DefaultScrollingMessage, msg)
	})
}

func TestSettingService_UpdateScrollingMessage(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("empty message rejected", func(t *testing.T) {
		mockRepo := new(MockSettingRepository)
		svc := NewSettingService(mockRepo, logger)

		err := svc.UpdateScrollingMessage(ctx, "")

		var ve *model.ValidationError
		require.ErrorAs(t, err, &ve)
		mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upserts value", func(t *testing.T) {
		mockRepo := new(MockSettingRepository)
		svc := NewSettingService(mockRepo, logger)

		mockRepo.On("Upsert", ctx, model.SettingScrollingMessage, "New banner").Return(nil)

		err := svc.UpdateScrollingMessage(ctx, "New banner")

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
