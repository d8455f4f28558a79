package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// OwnedAggregateModel provides common persistence fields for owner-scoped
// aggregate roots
type OwnedAggregateModel struct {
	AggregateModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainOwnedAggregateRoot populates OwnedAggregateModel from domain OwnedAggregateRoot
func (m *OwnedAggregateModel) FromDomainOwnedAggregateRoot(o shared.OwnedAggregateRoot) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.UserID = o.UserID
}

// PopulateOwnedAggregateRoot populates a domain OwnedAggregateRoot from persistence model
func (m *OwnedAggregateModel) PopulateOwnedAggregateRoot(o *shared.OwnedAggregateRoot) {
	o.BaseAggregateRoot.BaseEntity.ID = m.ID
	o.BaseAggregateRoot.BaseEntity.CreatedAt = m.CreatedAt
	o.BaseAggregateRoot.BaseEntity.UpdatedAt = m.UpdatedAt
	o.BaseAggregateRoot.Version = m.Version
	o.UserID = m.UserID
}

// ToOwnedAggregateRoot builds the domain OwnedAggregateRoot from persistence model
func (m *OwnedAggregateModel) ToOwnedAggregateRoot() shared.OwnedAggregateRoot {
	var o shared.OwnedAggregateRoot
	m.PopulateOwnedAggregateRoot(&o)
	return o
}
