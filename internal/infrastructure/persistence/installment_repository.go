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

// GormInstallmentPlanRepository implements finance.InstallmentPlanRepository using GORM
type GormInstallmentPlanRepository struct {
	db *gorm.DB
}

// NewGormInstallmentPlanRepository creates a new GormInstallmentPlanRepository
func NewGormInstallmentPlanRepository(db *gorm.DB) *GormInstallmentPlanRepository {
	return &GormInstallmentPlanRepository{db: db}
}

func (r *GormInstallmentPlanRepository) findByIDForUser(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*finance.InstallmentPlan, error) {
	var model models.InstallmentPlanModel
	if err := tx.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_number ASC")
		}).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUser finds an installment plan by ID scoped to its owner, with
// the payment schedule ordered by payment number
func (r *GormInstallmentPlanRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*finance.InstallmentPlan, error) {
	return r.findByIDForUser(ctx, r.db, userID, id)
}

// FindAllForUser finds all installment plans for a user with filtering
func (r *GormInstallmentPlanRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.InstallmentPlan, error) {
	var planModels []models.InstallmentPlanModel
	query := r.db.WithContext(ctx).Model(&models.InstallmentPlanModel{}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_number ASC")
		}).
		Where("user_id = ?", userID)

	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	sortField := ValidateSortField(filter.OrderBy, InstallmentPlanSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&planModels).Error; err != nil {
		return nil, err
	}
	plans := make([]finance.InstallmentPlan, len(planModels))
	for i, model := range planModels {
		plans[i] = *model.ToDomain()
	}
	return plans, nil
}

// Save creates or updates an installment plan together with its payment rows
func (r *GormInstallmentPlanRepository) Save(ctx context.Context, plan *finance.InstallmentPlan) error {
	model := models.InstallmentPlanModelFromDomain(plan)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Payments").Save(model).Error; err != nil {
			return err
		}
		for i := range model.Payments {
			if err := tx.Save(&model.Payments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteForUser deletes an installment plan; payment rows go with it
func (r *GormInstallmentPlanRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InstallmentPlanModel{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts a user's installment plans
func (r *GormInstallmentPlanRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InstallmentPlanModel{}).
		Where("user_id = ?", userID)
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInstallmentPlanRepository) findByPaymentID(ctx context.Context, tx *gorm.DB, userID, paymentID uuid.UUID) (*finance.InstallmentPlan, error) {
	var payment models.InstallmentPaymentModel
	if err := tx.WithContext(ctx).
		Select("plan_id").
		Where("id = ?", paymentID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.findByIDForUser(ctx, tx, userID, payment.PlanID)
}

// FindByPaymentID loads the plan containing the given payment, scoped to its owner
func (r *GormInstallmentPlanRepository) FindByPaymentID(ctx context.Context, userID, paymentID uuid.UUID) (*finance.InstallmentPlan, error) {
	return r.findByPaymentID(ctx, r.db, userID, paymentID)
}

// Settle settles one payment inside a single transaction. The paid flag is
// flipped with a conditional update keyed on is_paid = false, so two
// concurrent settlements of the same payment cannot both insert an expense.
func (r *GormInstallmentPlanRepository) Settle(ctx context.Context, userID, paymentID uuid.UUID, now time.Time) (*finance.InstallmentPlan, *finance.Expense, error) {
	var plan *finance.InstallmentPlan
	var expense *finance.Expense

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := r.findByPaymentID(ctx, tx, userID, paymentID)
		if err != nil {
			return err
		}

		created, err := loaded.Settle(paymentID, now)
		if err != nil {
			return err
		}

		result := tx.Model(&models.InstallmentPaymentModel{}).
			Where("id = ? AND is_paid = ?", paymentID, false).
			Updates(map[string]interface{}{
				"is_paid":    true,
				"paid_date":  now,
				"expense_id": created.ID,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrAlreadyPaid
		}

		if err := tx.Create(models.ExpenseModelFromDomain(created)).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.InstallmentPlanModel{}).
			Where("id = ?", loaded.ID).
			Updates(map[string]interface{}{
				"status":     string(loaded.Status),
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		plan = loaded
		expense = created
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return plan, expense, nil
}

var _ finance.InstallmentPlanRepository = (*GormInstallmentPlanRepository)(nil)
