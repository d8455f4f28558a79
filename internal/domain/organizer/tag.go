package organizer

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

// DefaultTagColor is applied when no color is given
const DefaultTagColor = "#3b82f6"

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Tag represents a label that can be attached to events, notes and todos
type Tag struct {
	shared.OwnedAggregateRoot
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewTag creates a tag. Names are trimmed and must be non-empty,
// colors must be a 6-digit hex value.
func NewTag(userID uuid.UUID, name, color string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tag name cannot be empty")
	}
	if color == "" {
		color = DefaultTagColor
	}
	if !hexColorPattern.MatchString(color) {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #3b82f6")
	}
	return &Tag{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		Color:              color,
	}, nil
}

// Update changes the tag's name and color
func (t *Tag) Update(name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tag name cannot be empty")
	}
	if !hexColorPattern.MatchString(color) {
		return shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #3b82f6")
	}
	t.Name = name
	t.Color = color
	t.UpdatedAt = time.Now()
	return nil
}
