package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

// Category represents a finance category used to classify expenses,
// budgets and installment plans
type Category struct {
	shared.OwnedAggregateRoot
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// NewCategory creates a finance category
func NewCategory(userID uuid.UUID, name, color, icon string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	return &Category{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		Color:              color,
		Icon:               icon,
	}, nil
}

// Update changes the category's fields
func (c *Category) Update(name, color, icon string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.Color = color
	c.Icon = icon
	c.UpdatedAt = time.Now()
	return nil
}
