package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/finance"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInstallmentPlanRepository struct {
	mock.Mock
}

func (m *MockInstallmentPlanRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*finance.InstallmentPlan, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.InstallmentPlan), args.Error(1)
}

func (m *MockInstallmentPlanRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.InstallmentPlan, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.InstallmentPlan), args.Error(1)
}

func (m *MockInstallmentPlanRepository) Save(ctx context.Context, plan *finance.InstallmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockInstallmentPlanRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockInstallmentPlanRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInstallmentPlanRepository) FindByPaymentID(ctx context.Context, userID, paymentID uuid.UUID) (*finance.InstallmentPlan, error) {
	args := m.Called(ctx, userID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.InstallmentPlan), args.Error(1)
}

func (m *MockInstallmentPlanRepository) Settle(ctx context.Context, userID, paymentID uuid.UUID, now time.Time) (*finance.InstallmentPlan, *finance.Expense, error) {
	args := m.Called(ctx, userID, paymentID, now)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*finance.InstallmentPlan), args.Get(1).(*finance.Expense), args.Error(2)
}

func newTestPlan(t *testing.T, userID uuid.UUID) *finance.InstallmentPlan {
	t.Helper()
	plan, err := finance.NewInstallmentPlan(
		userID,
		"Laptop",
		decimal.NewFromInt(1200),
		12,
		10,
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		nil,
	)
	require.NoError(t, err)
	return plan
}

func TestInstallmentService_CreateInstallmentPlan(t *testing.T) {
	userID := uuid.New()

	t.Run("creates the plan with its full schedule", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		service := NewInstallmentService(repo)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*finance.InstallmentPlan")).Return(nil)

		resp, err := service.CreateInstallmentPlan(context.Background(), userID, CreateInstallmentPlanRequest{
			Description:      "Laptop",
			TotalAmount:      decimal.NewFromInt(1200),
			NumberOfPayments: 12,
			DayOfMonth:       10,
			FirstPaymentDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		})

		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "active", resp.Status)
		require.Len(t, resp.Payments, 12)
		assert.True(t, resp.Payments[0].Amount.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, 12, resp.Payments[11].PaymentNumber)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an invalid schedule", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		service := NewInstallmentService(repo)

		_, err := service.CreateInstallmentPlan(context.Background(), userID, CreateInstallmentPlanRequest{
			Description:      "Laptop",
			TotalAmount:      decimal.NewFromInt(1200),
			NumberOfPayments: 0,
			DayOfMonth:       10,
			FirstPaymentDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestInstallmentService_DeleteInstallmentPlan(t *testing.T) {
	userID := uuid.New()

	t.Run("deletes a plan with no settled payments", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		service := NewInstallmentService(repo)

		plan := newTestPlan(t, userID)
		repo.On("FindByIDForUser", mock.Anything, userID, plan.ID).Return(plan, nil)
		repo.On("DeleteForUser", mock.Anything, userID, plan.ID).Return(nil)

		err := service.DeleteInstallmentPlan(context.Background(), userID, plan.ID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("refuses to delete once a payment settled", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		service := NewInstallmentService(repo)

		plan := newTestPlan(t, userID)
		_, err := plan.Settle(plan.Payments[0].ID, time.Now())
		require.NoError(t, err)

		repo.On("FindByIDForUser", mock.Anything, userID, plan.ID).Return(plan, nil)

		err = service.DeleteInstallmentPlan(context.Background(), userID, plan.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		repo.AssertNotCalled(t, "DeleteForUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestInstallmentService_SettlePayment(t *testing.T) {
	userID := uuid.New()

	t.Run("returns the settled plan and created expense", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		service := NewInstallmentService(repo)

		plan := newTestPlan(t, userID)
		paymentID := plan.Payments[0].ID
		expense, err := plan.Settle(paymentID, time.Now())
		require.NoError(t, err)

		repo.On("Settle", mock.Anything, userID, paymentID, mock.AnythingOfType("time.Time")).
			Return(plan, expense, nil)

		resp, err := service.SettlePayment(context.Background(), userID, paymentID)

		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "Laptop (Cuota 1/12)", resp.Expense.Description)
		assert.True(t, resp.Plan.Payments[0].IsPaid)
		repo.AssertExpectations(t)
	})

	t.Run("propagates an already settled payment", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		service := NewInstallmentService(repo)

		paymentID := uuid.New()
		repo.On("Settle", mock.Anything, userID, paymentID, mock.AnythingOfType("time.Time")).
			Return(nil, nil, shared.ErrAlreadyPaid)

		_, err := service.SettlePayment(context.Background(), userID, paymentID)

		assert.ErrorIs(t, err, shared.ErrAlreadyPaid)
	})
}
