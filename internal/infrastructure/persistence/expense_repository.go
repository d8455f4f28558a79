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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForUser finds an expense by ID scoped to its owner
func (r *GormExpenseRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
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

// FindAllForUser finds all expenses for a user with filtering
func (r *GormExpenseRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
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

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForUser deletes an expense
func (r *GormExpenseRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts a user's expenses
func (r *GormExpenseRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("user_id = ?", userID)
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByDateRange totals a user's expenses dated within [from, to], optionally
// restricted to one category. Budgets derive their spent figure from this.
func (r *GormExpenseRepository) SumByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time, categoryID *uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *GormExpenseRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	if categoryID, ok := filter.Filters["category_id"].(uuid.UUID); ok {
		query = query.Where("category_id = ?", categoryID)
	}
	if from, ok := filter.Filters["from"].(time.Time); ok {
		query = query.Where("date >= ?", from)
	}
	if to, ok := filter.Filters["to"].(time.Time); ok {
		query = query.Where("date <= ?", to)
	}
	return query
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
