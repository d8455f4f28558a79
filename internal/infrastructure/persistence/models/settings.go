package models

import (
	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/settings"
	"github.com/organizer/backend/internal/domain/shared"
)

// UserSettingsModel is the persistence model for per-user settings
type UserSettingsModel struct {
	AggregateModel
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	FinanceEnabled bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserSettingsModel) TableName() string {
	return "user_settings"
}

// ToDomain converts the persistence model to domain UserSettings
func (m *UserSettingsModel) ToDomain() *settings.UserSettings {
	return &settings.UserSettings{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		UserID:         m.UserID,
		FinanceEnabled: m.FinanceEnabled,
	}
}

// FromDomain populates the persistence model from domain UserSettings
func (m *UserSettingsModel) FromDomain(s *settings.UserSettings) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.UserID = s.UserID
	m.FinanceEnabled = s.FinanceEnabled
}

// UserSettingsModelFromDomain creates a new persistence model from domain UserSettings
func UserSettingsModelFromDomain(s *settings.UserSettings) *UserSettingsModel {
	m := &UserSettingsModel{}
	m.FromDomain(s)
	return m
}
