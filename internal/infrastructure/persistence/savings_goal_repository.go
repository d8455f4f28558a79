package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/finance"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/organizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSavingsGoalRepository implements finance.SavingsGoalRepository using GORM
type GormSavingsGoalRepository struct {
	db *gorm.DB
}

// NewGormSavingsGoalRepository creates a new GormSavingsGoalRepository
func NewGormSavingsGoalRepository(db *gorm.DB) *GormSavingsGoalRepository {
	return &GormSavingsGoalRepository{db: db}
}

// FindByIDForUser finds a savings goal by ID scoped to its owner
func (r *GormSavingsGoalRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*finance.SavingsGoal, error) {
	var model models.SavingsGoalModel
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

// FindAllForUser finds all savings goals for a user with filtering
func (r *GormSavingsGoalRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.SavingsGoal, error) {
	var goalModels []models.SavingsGoalModel
	query := r.db.WithContext(ctx).Model(&models.SavingsGoalModel{}).
		Where("user_id = ?", userID)

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	sortField := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&goalModels).Error; err != nil {
		return nil, err
	}
	goals := make([]finance.SavingsGoal, len(goalModels))
	for i, model := range goalModels {
		goals[i] = *model.ToDomain()
	}
	return goals, nil
}

// Save creates or updates a savings goal
func (r *GormSavingsGoalRepository) Save(ctx context.Context, goal *finance.SavingsGoal) error {
	model := models.SavingsGoalModelFromDomain(goal)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForUser deletes a savings goal
func (r *GormSavingsGoalRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SavingsGoalModel{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts a user's savings goals
func (r *GormSavingsGoalRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SavingsGoalModel{}).
		Where("user_id = ?", userID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ finance.SavingsGoalRepository = (*GormSavingsGoalRepository)(nil)
