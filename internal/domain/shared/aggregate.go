package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// OwnedAggregateRoot extends BaseAggregateRoot with per-user ownership.
// Every record in the system belongs to exactly one user and is invisible
// to every other user.
type OwnedAggregateRoot struct {
	BaseAggregateRoot
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewOwnedAggregateRoot creates a new owner-scoped aggregate root
func NewOwnedAggregateRoot(userID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		UserID:            userID,
	}
}

// GetUserID returns the owning user ID
func (o *OwnedAggregateRoot) GetUserID() uuid.UUID {
	return o.UserID
}
