package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/settings"
	"github.com/organizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// GetOrCreate returns the user's settings row, inserting defaults on first
// read. The insert ignores conflicts on user_id so two concurrent first
// reads both end up with the same row.
func (r *GormSettingsRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*settings.UserSettings, error) {
	var model models.UserSettingsModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err == nil {
		return model.ToDomain(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := settings.NewUserSettings(userID)
	created := models.UserSettingsModelFromDomain(defaults)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(created).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the user's settings
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.UserSettings) error {
	model := models.UserSettingsModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ settings.Repository = (*GormSettingsRepository)(nil)
