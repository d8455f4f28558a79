package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// maxInstallments bounds schedule length on plan creation
const maxInstallments = 360

// PlanStatus represents the lifecycle state of an installment plan
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusCancelled PlanStatus = "cancelled"
)

// IsValid checks if the status is a recognised value
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusActive, PlanStatusCompleted, PlanStatusCancelled:
		return true
	}
	return false
}

// InstallmentPayment is one dated obligation of an installment plan.
// IsPaid flips to true exactly once, recording the paid date and the
// expense row the settlement created.
type InstallmentPayment struct {
	shared.BaseEntity
	PlanID        uuid.UUID       `json:"plan_id"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	PaymentNumber int             `json:"payment_number"`
	IsPaid        bool            `json:"is_paid"`
	PaidDate      *time.Time      `json:"paid_date,omitempty"`
	ExpenseID     *uuid.UUID      `json:"expense_id,omitempty"`
}

// MarkPaid settles the payment, linking the created expense
func (p *InstallmentPayment) MarkPaid(expenseID uuid.UUID, paidAt time.Time) error {
	if p.IsPaid {
		return shared.ErrAlreadyPaid
	}
	p.IsPaid = true
	p.PaidDate = &paidAt
	p.ExpenseID = &expenseID
	p.UpdatedAt = time.Now()
	return nil
}

// InstallmentPlan splits a total amount into equal dated payments.
// The schedule is fixed at creation and never recomputed.
type InstallmentPlan struct {
	shared.OwnedAggregateRoot
	Description      string               `json:"description"`
	TotalAmount      decimal.Decimal      `json:"total_amount"`
	NumberOfPayments int                  `json:"number_of_payments"`
	DayOfMonth       int                  `json:"day_of_month"`
	FirstPaymentDate time.Time            `json:"first_payment_date"`
	CategoryID       *uuid.UUID           `json:"category_id,omitempty"`
	Status           PlanStatus           `json:"status"`
	Payments         []InstallmentPayment `json:"payments"`
}

// NewInstallmentPlan creates an active plan with its full payment schedule.
// Each payment's amount is the total divided by the payment count rounded to
// two places; the final payment absorbs the rounding remainder so the
// schedule sums exactly to the total. Payment i is due i-1 calendar months
// after the first payment date, clamping to the last day of shorter months
// (Jan 31 + 1 month = Feb 28/29).
func NewInstallmentPlan(userID uuid.UUID, description string, totalAmount decimal.Decimal, numberOfPayments, dayOfMonth int, firstPaymentDate time.Time, categoryID *uuid.UUID) (*InstallmentPlan, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if numberOfPayments < 1 || numberOfPayments > maxInstallments {
		return nil, shared.NewDomainError("INVALID_PAYMENT_COUNT", fmt.Sprintf("Number of payments must be between 1 and %d", maxInstallments))
	}
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return nil, shared.NewDomainError("INVALID_DAY_OF_MONTH", "Day of month must be between 1 and 31")
	}
	if firstPaymentDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "First payment date is required")
	}

	plan := &InstallmentPlan{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Description:        description,
		TotalAmount:        totalAmount,
		NumberOfPayments:   numberOfPayments,
		DayOfMonth:         dayOfMonth,
		FirstPaymentDate:   firstPaymentDate,
		CategoryID:         categoryID,
		Status:             PlanStatusActive,
	}

	perPayment := totalAmount.DivRound(decimal.NewFromInt(int64(numberOfPayments)), 2)
	plan.Payments = make([]InstallmentPayment, 0, numberOfPayments)
	for i := 1; i <= numberOfPayments; i++ {
		amount := perPayment
		if i == numberOfPayments {
			amount = totalAmount.Sub(perPayment.Mul(decimal.NewFromInt(int64(numberOfPayments - 1))))
		}
		plan.Payments = append(plan.Payments, InstallmentPayment{
			BaseEntity:    shared.NewBaseEntity(),
			PlanID:        plan.ID,
			Amount:        amount,
			DueDate:       addMonthsClamped(firstPaymentDate, i-1),
			PaymentNumber: i,
		})
	}
	return plan, nil
}

// addMonthsClamped adds months to t, clamping the day of month to the last
// valid day of the target month instead of rolling into the next one.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	hour, min, sec := t.Clock()
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// Update changes the plan's description and category
func (p *InstallmentPlan) Update(description string, categoryID *uuid.UUID) error {
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	p.Description = description
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	return nil
}

// SetStatus applies an administrative status override
func (p *InstallmentPlan) SetStatus(status PlanStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status is not valid")
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

// PaymentByID finds a payment within the plan
func (p *InstallmentPlan) PaymentByID(paymentID uuid.UUID) *InstallmentPayment {
	for i := range p.Payments {
		if p.Payments[i].ID == paymentID {
			return &p.Payments[i]
		}
	}
	return nil
}

// AllPaid reports whether every payment in the plan has been settled
func (p *InstallmentPlan) AllPaid() bool {
	for i := range p.Payments {
		if !p.Payments[i].IsPaid {
			return false
		}
	}
	return len(p.Payments) > 0
}

// HasPaidPayments reports whether any payment has been settled
func (p *InstallmentPlan) HasPaidPayments() bool {
	for i := range p.Payments {
		if p.Payments[i].IsPaid {
			return true
		}
	}
	return false
}

// Complete marks the plan finished once all payments are paid
func (p *InstallmentPlan) Complete() {
	p.Status = PlanStatusCompleted
	p.UpdatedAt = time.Now()
}

// ExpenseDescription builds the description for the expense a settled
// payment produces, e.g. "Laptop (Cuota 3/12)".
func (p *InstallmentPlan) ExpenseDescription(paymentNumber int) string {
	return fmt.Sprintf("%s (Cuota %d/%d)", p.Description, paymentNumber, p.NumberOfPayments)
}

// Settle settles one payment of the plan: it creates the matching expense
// dated now, marks the payment paid, and completes the plan when that was
// the last unpaid payment. Settling an already-paid payment fails with
// ErrAlreadyPaid and leaves the plan untouched.
func (p *InstallmentPlan) Settle(paymentID uuid.UUID, now time.Time) (*Expense, error) {
	payment := p.PaymentByID(paymentID)
	if payment == nil {
		return nil, shared.ErrNotFound
	}
	if payment.IsPaid {
		return nil, shared.ErrAlreadyPaid
	}
	expense, err := NewExpense(p.UserID, p.ExpenseDescription(payment.PaymentNumber), payment.Amount, now, p.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := payment.MarkPaid(expense.ID, now); err != nil {
		return nil, err
	}
	if p.AllPaid() {
		p.Complete()
	}
	return expense, nil
}
