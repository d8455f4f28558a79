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

// GormTodoRepository implements organizer.TodoRepository using GORM
type GormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GormTodoRepository
func NewGormTodoRepository(db *gorm.DB) *GormTodoRepository {
	return &GormTodoRepository{db: db}
}

// FindByIDForUser finds a todo with its subtasks, scoped to its owner
func (r *GormTodoRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*organizer.Todo, error) {
	var model models.TodoModel
	if err := r.db.WithContext(ctx).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
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

// FindBySubtaskID loads the todo owning the given subtask
func (r *GormTodoRepository) FindBySubtaskID(ctx context.Context, userID, subtaskID uuid.UUID) (*organizer.Todo, error) {
	var subtask models.SubtaskModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", subtaskID).
		First(&subtask).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByIDForUser(ctx, userID, subtask.TodoID)
}

// FindAllForUser finds all todos for a user with filtering
func (r *GormTodoRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]organizer.Todo, error) {
	var todoModels []models.TodoModel
	query := r.db.WithContext(ctx).Model(&models.TodoModel{}).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Tags").
		Where("user_id = ?", userID)
	query = r.applySearch(query, filter)

	sortField := ValidateSortField(filter.OrderBy, TodoSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&todoModels).Error; err != nil {
		return nil, err
	}
	todos := make([]organizer.Todo, len(todoModels))
	for i, model := range todoModels {
		todos[i] = *model.ToDomain()
	}
	return todos, nil
}

// Save creates or updates a todo, replacing its subtask rows and tag
// associations so the stored aggregate matches the domain state exactly
func (r *GormTodoRepository) Save(ctx context.Context, todo *organizer.Todo) error {
	model := models.TodoModelFromDomain(todo)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Subtasks", "Tags").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_id = ?", todo.ID).Delete(&models.SubtaskModel{}).Error; err != nil {
			return err
		}
		subtasks := models.SubtaskModelsFromDomain(todo.ID, todo.Subtasks)
		if len(subtasks) > 0 {
			if err := tx.Create(&subtasks).Error; err != nil {
				return err
			}
		}
		return tx.Model(model).Association("Tags").Replace(models.TagRefs(todo.TagIDs))
	})
}

// DeleteForUser deletes a todo; subtasks go with it via cascade
func (r *GormTodoRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TodoModel{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts a user's todos
func (r *GormTodoRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TodoModel{}).
		Where("user_id = ?", userID)
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTodoRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if priority, ok := filter.Filters["priority"].(string); ok && priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if completed, ok := filter.Filters["completed"].(bool); ok {
		query = query.Where("completed = ?", completed)
	}
	return query
}

var _ organizer.TodoRepository = (*GormTodoRepository)(nil)
