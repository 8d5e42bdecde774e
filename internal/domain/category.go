package domain

import "github.com/shopspring/decimal"

// Category is a user-defined expense bucket. ManualSpent, when valid,
// overrides the expense-derived spend total for the category.
type Category struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Enabled     bool        `json:"enabled"`
	Color       string      `json:"color"`
	ManualSpent LooseNumber `json:"manualSpent,omitempty"`
}

// Budget caps spending for one category. At most one budget per category
// survives normalization, and its limit is always positive.
type Budget struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Limit      decimal.Decimal `json:"limit"`
}

// Expense is a single spend entry. Date is an ISO date string; it is carried
// for display and never interpreted by the calculation layer.
type Expense struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Title      string          `json:"title"`
}
