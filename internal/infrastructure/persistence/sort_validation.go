package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// EventSortFields contains allowed sort fields for calendar events
var EventSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"start_time": true,
	"end_time":   true,
}

// NoteSortFields contains allowed sort fields for notes
var NoteSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"type":       true,
}

// TodoSortFields contains allowed sort fields for todos
var TodoSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"priority":   true,
	"status":     true,
	"due_date":   true,
}

// TagSortFields contains allowed sort fields for tags
var TagSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// FinanceRecordSortFields contains allowed sort fields for dated finance records
var FinanceRecordSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"description": true,
	"amount":      true,
	"date":        true,
}

// BudgetSortFields contains allowed sort fields for budgets
var BudgetSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"period":     true,
	"start_date": true,
}

// InstallmentPlanSortFields contains allowed sort fields for installment plans
var InstallmentPlanSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"description":        true,
	"total_amount":       true,
	"first_payment_date": true,
	"status":             true,
}
