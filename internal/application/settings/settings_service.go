package settings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/settings"
	"github.com/organizer/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Cache is the read-through cache the service keeps in front of the
// settings store. A miss returns (nil, nil).
type Cache interface {
	Get(ctx context.Context, userID uuid.UUID) (*settings.UserSettings, error)
	Set(ctx context.Context, s *settings.UserSettings) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Service provides application-level user settings operations
type Service struct {
	repo  settings.Repository
	cache Cache
}

// NewService creates a new settings Service. The cache is optional.
func NewService(repo settings.Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// SettingsResponse represents user settings in API responses
type SettingsResponse struct {
	FinanceEnabled bool      `json:"finance_enabled"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateSettingsRequest represents a request to update user settings
type UpdateSettingsRequest struct {
	FinanceEnabled *bool `json:"finance_enabled" binding:"required"`
}

// GetSettings returns the user's settings, creating defaults on first
// read. Cache failures fall through to the store.
func (s *Service) GetSettings(ctx context.Context, userID uuid.UUID) (*SettingsResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			logger.L(ctx).Warn("Settings cache read failed", zap.Error(err))
		}
		if cached != nil {
			return toSettingsResponse(cached), nil
		}
	}

	stored, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stored); err != nil {
			logger.L(ctx).Warn("Settings cache write failed", zap.Error(err))
		}
	}
	return toSettingsResponse(stored), nil
}

// UpdateSettings updates the user's settings and drops the cached copy
func (s *Service) UpdateSettings(ctx context.Context, userID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	stored, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FinanceEnabled != nil {
		stored.SetFinanceEnabled(*req.FinanceEnabled)
	}

	if err := s.repo.Save(ctx, stored); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			logger.L(ctx).Warn("Settings cache invalidation failed", zap.Error(err))
		}
	}
	return toSettingsResponse(stored), nil
}

// FinanceEnabled reports whether the finance module is switched on for
// the user. The finance feature gate calls this on every request, so
// reads go through the cache.
func (s *Service) FinanceEnabled(ctx context.Context, userID uuid.UUID) (bool, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			logger.L(ctx).Warn("Settings cache read failed", zap.Error(err))
		}
		if cached != nil {
			return cached.FinanceEnabled, nil
		}
	}

	stored, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, stored); err != nil {
			logger.L(ctx).Warn("Settings cache write failed", zap.Error(err))
		}
	}
	return stored.FinanceEnabled, nil
}

func toSettingsResponse(s *settings.UserSettings) *SettingsResponse {
	return &SettingsResponse{
		FinanceEnabled: s.FinanceEnabled,
		UpdatedAt:      s.UpdatedAt,
	}
}
