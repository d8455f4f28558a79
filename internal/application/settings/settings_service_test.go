package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*settings.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *settings.UserSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockSettingsCache struct {
	mock.Mock
}

func (m *MockSettingsCache) Get(ctx context.Context, userID uuid.UUID) (*settings.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.UserSettings), args.Error(1)
}

func (m *MockSettingsCache) Set(ctx context.Context, s *settings.UserSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestService_GetSettings(t *testing.T) {
	userID := uuid.New()

	t.Run("serves from cache when present", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)
		service := NewService(repo, cache)

		cached := settings.NewUserSettings(userID)
		cached.SetFinanceEnabled(true)
		cache.On("Get", mock.Anything, userID).Return(cached, nil)

		resp, err := service.GetSettings(context.Background(), userID)

		assert.NoError(t, err)
		assert.True(t, resp.FinanceEnabled)
		repo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("falls back to the store and fills the cache", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)
		service := NewService(repo, cache)

		stored := settings.NewUserSettings(userID)
		cache.On("Get", mock.Anything, userID).Return(nil, nil)
		repo.On("GetOrCreate", mock.Anything, userID).Return(stored, nil)
		cache.On("Set", mock.Anything, stored).Return(nil)

		resp, err := service.GetSettings(context.Background(), userID)

		assert.NoError(t, err)
		assert.False(t, resp.FinanceEnabled)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("works without a cache", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		service := NewService(repo, nil)

		stored := settings.NewUserSettings(userID)
		repo.On("GetOrCreate", mock.Anything, userID).Return(stored, nil)

		resp, err := service.GetSettings(context.Background(), userID)

		assert.NoError(t, err)
		require.NotNil(t, resp)
		repo.AssertExpectations(t)
	})
}

func TestService_UpdateSettings(t *testing.T) {
	userID := uuid.New()

	t.Run("persists the toggle and drops the cached copy", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)
		service := NewService(repo, cache)

		stored := settings.NewUserSettings(userID)
		repo.On("GetOrCreate", mock.Anything, userID).Return(stored, nil)
		repo.On("Save", mock.Anything, stored).Return(nil)
		cache.On("Invalidate", mock.Anything, userID).Return(nil)

		enabled := true
		resp, err := service.UpdateSettings(context.Background(), userID, UpdateSettingsRequest{FinanceEnabled: &enabled})

		assert.NoError(t, err)
		assert.True(t, resp.FinanceEnabled)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}

func TestService_FinanceEnabled(t *testing.T) {
	userID := uuid.New()

	t.Run("cache hit answers directly", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)
		service := NewService(repo, cache)

		cached := settings.NewUserSettings(userID)
		cached.SetFinanceEnabled(true)
		cache.On("Get", mock.Anything, userID).Return(cached, nil)

		enabled, err := service.FinanceEnabled(context.Background(), userID)

		assert.NoError(t, err)
		assert.True(t, enabled)
		repo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
	})

	t.Run("defaults to disabled for a fresh user", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)
		service := NewService(repo, cache)

		stored := settings.NewUserSettings(userID)
		cache.On("Get", mock.Anything, userID).Return(nil, nil)
		repo.On("GetOrCreate", mock.Anything, userID).Return(stored, nil)
		cache.On("Set", mock.Anything, stored).Return(nil)

		enabled, err := service.FinanceEnabled(context.Background(), userID)

		assert.NoError(t, err)
		assert.False(t, enabled)
	})
}
