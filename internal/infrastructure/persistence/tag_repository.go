package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/organizer"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/organizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTagRepository implements organizer.TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByIDForUser finds a tag by ID scoped to its owner
func (r *GormTagRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*organizer.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a user's tag by exact name
func (r *GormTagRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*organizer.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all tags for a user with filtering
func (r *GormTagRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]organizer.Tag, error) {
	var tagModels []models.TagModel
	query := r.db.WithContext(ctx).Model(&models.TagModel{}).
		Where("user_id = ?", userID)

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	sortField := ValidateSortField(filter.OrderBy, TagSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&tagModels).Error; err != nil {
		return nil, err
	}
	tags := make([]organizer.Tag, len(tagModels))
	for i, model := range tagModels {
		tags[i] = *model.ToDomain()
	}
	return tags, nil
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *organizer.Tag) error {
	model := models.TagModelFromDomain(tag)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForUser deletes a tag. Association rows to events, notes and todos
// are removed by the join tables' cascade constraints.
func (r *GormTagRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TagModel{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts a user's tags
func (r *GormTagRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TagModel{}).
		Where("user_id = ?", userID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ organizer.TagRepository = (*GormTagRepository)(nil)
