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

// GormBudgetRepository implements finance.BudgetRepository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// FindByIDForUser finds a budget by ID scoped to its owner
func (r *GormBudgetRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*finance.Budget, error) {
	var model models.BudgetModel
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

// FindAllForUser finds all budgets for a user with filtering
func (r *GormBudgetRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.Budget, error) {
	var budgetModels []models.BudgetModel
	query := r.db.WithContext(ctx).Model(&models.BudgetModel{}).
		Where("user_id = ?", userID)

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if period, ok := filter.Filters["period"].(string); ok && period != "" {
		query = query.Where("period = ?", period)
	}
	if categoryID, ok := filter.Filters["category_id"].(uuid.UUID); ok {
		query = query.Where("category_id = ?", categoryID)
	}

	sortField := ValidateSortField(filter.OrderBy, BudgetSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&budgetModels).Error; err != nil {
		return nil, err
	}
	budgets := make([]finance.Budget, len(budgetModels))
	for i, model := range budgetModels {
		budgets[i] = *model.ToDomain()
	}
	return budgets, nil
}

// Save creates or updates a budget
func (r *GormBudgetRepository) Save(ctx context.Context, budget *finance.Budget) error {
	model := models.BudgetModelFromDomain(budget)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForUser deletes a budget
func (r *GormBudgetRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BudgetModel{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts a user's budgets
func (r *GormBudgetRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BudgetModel{}).
		Where("user_id = ?", userID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ finance.BudgetRepository = (*GormBudgetRepository)(nil)
