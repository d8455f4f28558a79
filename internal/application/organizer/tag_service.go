package organizer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/organizer"
	"github.com/organizer/backend/internal/domain/shared"
)

// TagService provides application-level tag operations
type TagService struct {
	tagRepo organizer.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo organizer.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTagRequest represents a request to create a tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// UpdateTagRequest represents a request to update a tag
type UpdateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// TagListFilter defines filtering options for tag list queries
type TagListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// CreateTag creates a new tag. Names are unique per user.
func (s *TagService) CreateTag(ctx context.Context, userID uuid.UUID, req CreateTagRequest) (*TagResponse, error) {
	tag, err := organizer.NewTag(userID, req.Name, req.Color)
	if err != nil {
		return nil, err
	}

	existing, err := s.tagRepo.FindByName(ctx, userID, tag.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A tag with this name already exists")
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	return toTagResponse(tag), nil
}

// GetTagByID gets a tag by ID
func (s *TagService) GetTagByID(ctx context.Context, userID, id uuid.UUID) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toTagResponse(tag), nil
}

// UpdateTag updates a tag, keeping the per-user name uniqueness
func (s *TagService) UpdateTag(ctx context.Context, userID, id uuid.UUID, req UpdateTagRequest) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := tag.Update(req.Name, req.Color); err != nil {
		return nil, err
	}

	existing, err := s.tagRepo.FindByName(ctx, userID, tag.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != tag.ID {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A tag with this name already exists")
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	return toTagResponse(tag), nil
}

// DeleteTag deletes a tag. Associations to events, notes and todos are
// removed with it; the tagged items themselves survive.
func (s *TagService) DeleteTag(ctx context.Context, userID, id uuid.UUID) error {
	return s.tagRepo.DeleteForUser(ctx, userID, id)
}

// ListTags lists tags with filtering and pagination
func (s *TagService) ListTags(ctx context.Context, userID uuid.UUID, filter TagListFilter) ([]TagResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	tags, err := s.tagRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tagRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TagResponse, len(tags))
	for i := range tags {
		responses[i] = *toTagResponse(&tags[i])
	}
	return responses, total, nil
}

func toTagResponse(t *organizer.Tag) *TagResponse {
	return &TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
