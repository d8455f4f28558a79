package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/finance"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/organizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormIncomeRepository implements finance.IncomeRepository using GORM
type GormIncomeRepository struct {
	db *gorm.DB
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{db: db}
}

// FindByIDForUser finds an income by ID scoped to its owner
func (r *GormIncomeRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*finance.Income, error) {
	var model models.IncomeModel
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

// FindAllForUser finds all incomes for a user with filtering
func (r *GormIncomeRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.Income, error) {
	var incomeModels []models.IncomeModel
	query := r.db.WithContext(ctx).Model(&models.IncomeModel{}).
		Where("user_id = ?", userID)
	query = r.applySearch(query, filter)

	sortField := ValidateSortField(filter.OrderBy, FinanceRecordSortFields, "date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&incomeModels).Error; err != nil {
		return nil, err
	}
	incomes := make([]finance.Income, len(incomeModels))
	for i, model := range incomeModels {
		incomes[i] = *model.ToDomain()
	}
	return incomes, nil
}

// Save creates or updates an income
func (r *GormIncomeRepository) Save(ctx context.Context, income *finance.Income) error {
	model := models.IncomeModelFromDomain(income)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForUser deletes an income
func (r *GormIncomeRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.IncomeModel{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts a user's incomes
func (r *GormIncomeRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.IncomeModel{}).
		Where("user_id = ?", userID)
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormIncomeRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	if recurring, ok := filter.Filters["is_recurring"].(bool); ok {
		query = query.Where("is_recurring = ?", recurring)
	}
	if from, ok := filter.Filters["from"].(time.Time); ok {
		query = query.Where("date >= ?", from)
	}
	if to, ok := filter.Filters["to"].(time.Time); ok {
		query = query.Where("date <= ?", to)
	}
	return query
}

var _ finance.IncomeRepository = (*GormIncomeRepository)(nil)
