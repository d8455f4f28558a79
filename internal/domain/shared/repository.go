package shared

import (
	"context"

	"github.com/google/uuid"
)

// OwnedRepository is the base interface for owner-scoped repositories.
// Every lookup takes the owning user ID so that one user can never read
// or mutate another user's rows; a mismatch surfaces as ErrNotFound.
type OwnedRepository[T any] interface {
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*T, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
	CountForUser(ctx context.Context, userID uuid.UUID, filter Filter) (int64, error)
}

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
