package settings

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

// UserSettings holds per-user feature flags. One row per user, created
// lazily with defaults on first read.
type UserSettings struct {
	shared.BaseAggregateRoot
	UserID         uuid.UUID `json:"user_id"`
	FinanceEnabled bool      `json:"finance_enabled"`
}

// NewUserSettings creates a settings row with default values
func NewUserSettings(userID uuid.UUID) *UserSettings {
	return &UserSettings{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		FinanceEnabled:    false,
	}
}

// SetFinanceEnabled toggles the finance module for the user
func (s *UserSettings) SetFinanceEnabled(enabled bool) {
	s.FinanceEnabled = enabled
	s.UpdatedAt = time.Now()
}
