package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/calendar"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/organizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEventRepository implements calendar.EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByIDForUser finds an event by ID scoped to its owner
func (r *GormEventRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*calendar.Event, error) {
	var model models.EventModel
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all events for a user with filtering
func (r *GormEventRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]calendar.Event, error) {
	var eventModels []models.EventModel
	query := r.db.WithContext(ctx).Model(&models.EventModel{}).
		Preload("Tags").
		Where("user_id = ?", userID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, err
	}
	events := make([]calendar.Event, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, nil
}

// FindByTimeRange finds a user's events whose start falls within [from, to]
func (r *GormEventRepository) FindByTimeRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]calendar.Event, error) {
	var eventModels []models.EventModel
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ? AND start_time >= ? AND start_time <= ?", userID, from, to).
		Order("start_time ASC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}
	events := make([]calendar.Event, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, nil
}

// Save creates or updates an event and replaces its tag associations
func (r *GormEventRepository) Save(ctx context.Context, event *calendar.Event) error {
	model := models.EventModelFromDomain(event)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Save(model).Error; err != nil {
			return err
		}
		return tx.Model(model).Association("Tags").Replace(models.TagRefs(event.TagIDs))
	})
}

// CreateBatch persists a recurring series in one transaction. Either every
// occurrence row lands or none do.
func (r *GormEventRepository) CreateBatch(ctx context.Context, events []*calendar.Event) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, event := range events {
			model := models.EventModelFromDomain(event)
			if err := tx.Omit("Tags").Create(model).Error; err != nil {
				return err
			}
			if len(event.TagIDs) > 0 {
				if err := tx.Model(model).Association("Tags").Replace(models.TagRefs(event.TagIDs)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DeleteForUser deletes one event instance; siblings of a recurring series
// are untouched
func (r *GormEventRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EventModel{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts a user's events with filtering
func (r *GormEventRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.EventModel{}).
		Where("user_id = ?", userID)
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormEventRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	sortField := ValidateSortField(filter.OrderBy, EventSortFields, "start_time")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}
	return query
}

func (r *GormEventRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	if from, ok := filter.Filters["from"].(time.Time); ok {
		query = query.Where("start_time >= ?", from)
	}
	if to, ok := filter.Filters["to"].(time.Time); ok {
		query = query.Where("start_time <= ?", to)
	}
	return query
}

var _ calendar.EventRepository = (*GormEventRepository)(nil)
