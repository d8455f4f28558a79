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

// GormInvestmentRepository implements finance.InvestmentRepository using GORM
type GormInvestmentRepository struct {
	db *gorm.DB
}

// NewGormInvestmentRepository creates a new GormInvestmentRepository
func NewGormInvestmentRepository(db *gorm.DB) *GormInvestmentRepository {
	return &GormInvestmentRepository{db: db}
}

// FindByIDForUser finds an investment by ID scoped to its owner
func (r *GormInvestmentRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*finance.Investment, error) {
	var model models.InvestmentModel
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

// FindAllForUser finds all investments for a user with filtering
func (r *GormInvestmentRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.Investment, error) {
	var investmentModels []models.InvestmentModel
	query := r.db.WithContext(ctx).Model(&models.InvestmentModel{}).
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

	if err := query.Find(&investmentModels).Error; err != nil {
		return nil, err
	}
	investments := make([]finance.Investment, len(investmentModels))
	for i, model := range investmentModels {
		investments[i] = *model.ToDomain()
	}
	return investments, nil
}

// Save creates or updates an investment
func (r *GormInvestmentRepository) Save(ctx context.Context, investment *finance.Investment) error {
	model := models.InvestmentModelFromDomain(investment)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForUser deletes an investment
func (r *GormInvestmentRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvestmentModel{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts a user's investments
func (r *GormInvestmentRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InvestmentModel{}).
		Where("user_id = ?", userID)
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInvestmentRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	if investmentType, ok := filter.Filters["type"].(string); ok && investmentType != "" {
		query = query.Where("type = ?", investmentType)
	}
	if from, ok := filter.Filters["from"].(time.Time); ok {
		query = query.Where("date >= ?", from)
	}
	if to, ok := filter.Filters["to"].(time.Time); ok {
		query = query.Where("date <= ?", to)
	}
	return query
}

var _ finance.InvestmentRepository = (*GormInvestmentRepository)(nil)
