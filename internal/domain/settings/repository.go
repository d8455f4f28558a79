package settings

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for user settings
type Repository interface {
	// GetOrCreate returns the user's settings, creating a default row on
	// first read
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*UserSettings, error)
	Save(ctx context.Context, s *UserSettings) error
}
