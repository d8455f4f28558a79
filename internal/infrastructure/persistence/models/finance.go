package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for finance categories
type CategoryModel struct {
	OwnedAggregateModel
	Name  string `gorm:"type:varchar(100);not null"`
	Color string `gorm:"type:varchar(7)"`
	Icon  string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "finance_categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *finance.Category {
	return &finance.Category{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Name:               m.Name,
		Color:              m.Color,
		Icon:               m.Icon,
	}
}

// FromDomain populates the persistence model from a domain Category
func (m *CategoryModel) FromDomain(c *finance.Category) {
	m.FromDomainOwnedAggregateRoot(c.OwnedAggregateRoot)
	m.Name = c.Name
	m.Color = c.Color
	m.Icon = c.Icon
}

// CategoryModelFromDomain creates a new persistence model from a domain Category
func CategoryModelFromDomain(c *finance.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ExpenseModel is the persistence model for expenses
type ExpenseModel struct {
	OwnedAggregateModel
	Description string          `gorm:"type:varchar(300);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Date        time.Time       `gorm:"not null;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Description:        m.Description,
		Amount:             m.Amount,
		Date:               m.Date,
		CategoryID:         m.CategoryID,
	}
}

// FromDomain populates the persistence model from a domain Expense
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainOwnedAggregateRoot(e.OwnedAggregateRoot)
	m.Description = e.Description
	m.Amount = e.Amount
	m.Date = e.Date
	m.CategoryID = e.CategoryID
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// IncomeModel is the persistence model for incomes
type IncomeModel struct {
	OwnedAggregateModel
	Description string          `gorm:"type:varchar(300);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Date        time.Time       `gorm:"not null;index"`
	IsRecurring bool            `gorm:"not null;default:false"`
	Frequency   *string         `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (IncomeModel) TableName() string {
	return "incomes"
}

// ToDomain converts the persistence model to a domain Income
func (m *IncomeModel) ToDomain() *finance.Income {
	var freq *finance.IncomeFrequency
	if m.Frequency != nil {
		f := finance.IncomeFrequency(*m.Frequency)
		freq = &f
	}
	return &finance.Income{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Description:        m.Description,
		Amount:             m.Amount,
		Date:               m.Date,
		IsRecurring:        m.IsRecurring,
		Frequency:          freq,
	}
}

// FromDomain populates the persistence model from a domain Income
func (m *IncomeModel) FromDomain(i *finance.Income) {
	m.FromDomainOwnedAggregateRoot(i.OwnedAggregateRoot)
	m.Description = i.Description
	m.Amount = i.Amount
	m.Date = i.Date
	m.IsRecurring = i.IsRecurring
	if i.Frequency != nil {
		f := string(*i.Frequency)
		m.Frequency = &f
	} else {
		m.Frequency = nil
	}
}

// IncomeModelFromDomain creates a new persistence model from a domain Income
func IncomeModelFromDomain(i *finance.Income) *IncomeModel {
	m := &IncomeModel{}
	m.FromDomain(i)
	return m
}

// InvestmentModel is the persistence model for investments
type InvestmentModel struct {
	OwnedAggregateModel
	Description string          `gorm:"type:varchar(300);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Date        time.Time       `gorm:"not null;index"`
	Type        string          `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (InvestmentModel) TableName() string {
	return "investments"
}

// ToDomain converts the persistence model to a domain Investment
func (m *InvestmentModel) ToDomain() *finance.Investment {
	return &finance.Investment{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Description:        m.Description,
		Amount:             m.Amount,
		Date:               m.Date,
		Type:               m.Type,
	}
}

// FromDomain populates the persistence model from a domain Investment
func (m *InvestmentModel) FromDomain(v *finance.Investment) {
	m.FromDomainOwnedAggregateRoot(v.OwnedAggregateRoot)
	m.Description = v.Description
	m.Amount = v.Amount
	m.Date = v.Date
	m.Type = v.Type
}

// InvestmentModelFromDomain creates a new persistence model from a domain Investment
func InvestmentModelFromDomain(v *finance.Investment) *InvestmentModel {
	m := &InvestmentModel{}
	m.FromDomain(v)
	return m
}

// SavingsGoalModel is the persistence model for savings goals
type SavingsGoalModel struct {
	OwnedAggregateModel
	Name          string          `gorm:"type:varchar(200);not null"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Deadline      *time.Time      `gorm:""`
	Description   string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SavingsGoalModel) TableName() string {
	return "savings_goals"
}

// ToDomain converts the persistence model to a domain SavingsGoal
func (m *SavingsGoalModel) ToDomain() *finance.SavingsGoal {
	return &finance.SavingsGoal{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Name:               m.Name,
		TargetAmount:       m.TargetAmount,
		CurrentAmount:      m.CurrentAmount,
		Deadline:           m.Deadline,
		Description:        m.Description,
	}
}

// FromDomain populates the persistence model from a domain SavingsGoal
func (m *SavingsGoalModel) FromDomain(g *finance.SavingsGoal) {
	m.FromDomainOwnedAggregateRoot(g.OwnedAggregateRoot)
	m.Name = g.Name
	m.TargetAmount = g.TargetAmount
	m.CurrentAmount = g.CurrentAmount
	m.Deadline = g.Deadline
	m.Description = g.Description
}

// SavingsGoalModelFromDomain creates a new persistence model from a domain SavingsGoal
func SavingsGoalModelFromDomain(g *finance.SavingsGoal) *SavingsGoalModel {
	m := &SavingsGoalModel{}
	m.FromDomain(g)
	return m
}

// BudgetModel is the persistence model for budgets
type BudgetModel struct {
	OwnedAggregateModel
	Name        string          `gorm:"type:varchar(200);not null"`
	LimitAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Period      string          `gorm:"type:varchar(10);not null"`
	StartDate   time.Time       `gorm:"not null"`
	EndDate     *time.Time      `gorm:""`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the persistence model to a domain Budget
func (m *BudgetModel) ToDomain() *finance.Budget {
	return &finance.Budget{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Name:               m.Name,
		LimitAmount:        m.LimitAmount,
		Period:             finance.BudgetPeriod(m.Period),
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		CategoryID:         m.CategoryID,
	}
}

// FromDomain populates the persistence model from a domain Budget
func (m *BudgetModel) FromDomain(b *finance.Budget) {
	m.FromDomainOwnedAggregateRoot(b.OwnedAggregateRoot)
	m.Name = b.Name
	m.LimitAmount = b.LimitAmount
	m.Period = string(b.Period)
	m.StartDate = b.StartDate
	m.EndDate = b.EndDate
	m.CategoryID = b.CategoryID
}

// BudgetModelFromDomain creates a new persistence model from a domain Budget
func BudgetModelFromDomain(b *finance.Budget) *BudgetModel {
	m := &BudgetModel{}
	m.FromDomain(b)
	return m
}

// InstallmentPaymentModel is the persistence model for installment payments
type InstallmentPaymentModel struct {
	BaseModel
	PlanID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_plan_payment_number,priority:1"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DueDate       time.Time       `gorm:"not null"`
	PaymentNumber int             `gorm:"not null;uniqueIndex:idx_plan_payment_number,priority:2"`
	IsPaid        bool            `gorm:"not null;default:false"`
	PaidDate      *time.Time      `gorm:""`
	ExpenseID     *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (InstallmentPaymentModel) TableName() string {
	return "installment_payments"
}

// ToDomain converts the persistence model to a domain InstallmentPayment
func (m *InstallmentPaymentModel) ToDomain() finance.InstallmentPayment {
	return finance.InstallmentPayment{
		BaseEntity:    m.BaseModel.ToDomain(),
		PlanID:        m.PlanID,
		Amount:        m.Amount,
		DueDate:       m.DueDate,
		PaymentNumber: m.PaymentNumber,
		IsPaid:        m.IsPaid,
		PaidDate:      m.PaidDate,
		ExpenseID:     m.ExpenseID,
	}
}

// FromDomain populates the persistence model from a domain InstallmentPayment
func (m *InstallmentPaymentModel) FromDomain(p finance.InstallmentPayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.PlanID = p.PlanID
	m.Amount = p.Amount
	m.DueDate = p.DueDate
	m.PaymentNumber = p.PaymentNumber
	m.IsPaid = p.IsPaid
	m.PaidDate = p.PaidDate
	m.ExpenseID = p.ExpenseID
}

// InstallmentPlanModel is the persistence model for installment plans
type InstallmentPlanModel struct {
	OwnedAggregateModel
	Description      string                    `gorm:"type:varchar(300);not null"`
	TotalAmount      decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	NumberOfPayments int                       `gorm:"not null"`
	DayOfMonth       int                       `gorm:"not null"`
	FirstPaymentDate time.Time                 `gorm:"not null"`
	CategoryID       *uuid.UUID                `gorm:"type:uuid;index"`
	Status           string                    `gorm:"type:varchar(20);not null;default:'active';index"`
	Payments         []InstallmentPaymentModel `gorm:"foreignKey:PlanID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InstallmentPlanModel) TableName() string {
	return "installment_plans"
}

// ToDomain converts the persistence model to a domain InstallmentPlan
func (m *InstallmentPlanModel) ToDomain() *finance.InstallmentPlan {
	payments := make([]finance.InstallmentPayment, len(m.Payments))
	for i, p := range m.Payments {
		payments[i] = p.ToDomain()
	}
	return &finance.InstallmentPlan{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Description:        m.Description,
		TotalAmount:        m.TotalAmount,
		NumberOfPayments:   m.NumberOfPayments,
		DayOfMonth:         m.DayOfMonth,
		FirstPaymentDate:   m.FirstPaymentDate,
		CategoryID:         m.CategoryID,
		Status:             finance.PlanStatus(m.Status),
		Payments:           payments,
	}
}

// FromDomain populates the persistence model from a domain InstallmentPlan
func (m *InstallmentPlanModel) FromDomain(p *finance.InstallmentPlan) {
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	m.Description = p.Description
	m.TotalAmount = p.TotalAmount
	m.NumberOfPayments = p.NumberOfPayments
	m.DayOfMonth = p.DayOfMonth
	m.FirstPaymentDate = p.FirstPaymentDate
	m.CategoryID = p.CategoryID
	m.Status = string(p.Status)
	m.Payments = make([]InstallmentPaymentModel, len(p.Payments))
	for i, payment := range p.Payments {
		m.Payments[i].FromDomain(payment)
	}
}

// InstallmentPlanModelFromDomain creates a new persistence model from a domain InstallmentPlan
func InstallmentPlanModelFromDomain(p *finance.InstallmentPlan) *InstallmentPlanModel {
	m := &InstallmentPlanModel{}
	m.FromDomain(p)
	return m
}
