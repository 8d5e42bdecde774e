package reconcile

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/guroosh/ledger/internal/domain"
)

// colorPalette is the fixed cyclic palette used when a category has no color.
var colorPalette = []string{"teal", "indigo", "amber", "rose", "violet", "cyan"}

// defaultCategoryNames seed an empty category collection.
var defaultCategoryNames = []string{"Food", "Transport", "Shopping", "Bills"}

// defaultGoals seed an empty goal collection.
var defaultGoals = []struct {
	name   string
	target int64
}{
	{"Emergency Fund", 10000},
	{"Travel", 5000},
}

// CategoryRecord is the loose persisted shape of a category. Older sessions
// may have stored entries with missing ids, colors, or enabled flags.
type CategoryRecord struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Enabled     *bool              `json:"enabled"`
	Color       string             `json:"color"`
	ManualSpent domain.LooseNumber `json:"manualSpent"`
}

// BudgetRecord is the loose persisted shape of a budget.
type BudgetRecord struct {
	ID         string             `json:"id"`
	CategoryID string             `json:"categoryId"`
	Limit      domain.LooseNumber `json:"limit"`
}

// ExpenseRecord is the loose persisted shape of an expense. Category is the
// legacy field that held a category name before ids were introduced.
type ExpenseRecord struct {
	ID         string             `json:"id"`
	CategoryID string             `json:"categoryId"`
	Category   string             `json:"category"`
	Amount     domain.LooseNumber `json:"amount"`
	Date       string             `json:"date"`
	Title      string             `json:"title"`
}

// GoalRecord is the loose persisted shape of a savings goal.
type GoalRecord struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	TargetAmount  domain.LooseNumber    `json:"targetAmount"`
	SavedAmount   domain.LooseNumber    `json:"savedAmount"`
	Contributions []domain.Contribution `json:"contributions"`
}

// NormalizeCategories repairs a persisted category collection: an empty list
// is seeded with defaults, missing ids are generated, duplicate ids keep the
// first entry only, enabled defaults to true unless explicitly false, colors
// come from the cyclic palette, and a manual spend override survives only as
// a valid non-negative number.
func NormalizeCategories(list []CategoryRecord) []domain.Category {
	if len(list) == 0 {
		return lo.Map(defaultCategoryNames, func(name string, i int) domain.Category {
			return domain.Category{
				ID:      uuid.NewString(),
				Name:    name,
				Enabled: true,
				Color:   colorPalette[i%len(colorPalette)],
			}
		})
	}

	var categories []domain.Category
	seen := make(map[string]bool)
	for i, rec := range list {
		if rec.ID != "" && seen[rec.ID] {
			continue
		}
		c := domain.Category{
			ID:      rec.ID,
			Name:    rec.Name,
			Enabled: rec.Enabled == nil || *rec.Enabled,
			Color:   rec.Color,
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		seen[c.ID] = true
		if c.Color == "" {
			c.Color = colorPalette[i%len(colorPalette)]
		}
		if rec.ManualSpent.Valid && !rec.ManualSpent.Value.IsNegative() {
			c.ManualSpent = rec.ManualSpent
		}
		categories = append(categories, c)
	}
	return categories
}

// NormalizeBudgets drops budgets that reference an unknown category or carry
// a non-positive limit, generates missing ids, and keeps at most one budget
// per category (first wins).
func NormalizeBudgets(list []BudgetRecord, categories []domain.Category) []domain.Budget {
	known := lo.SliceToMap(categories, func(c domain.Category) (string, struct{}) {
		return c.ID, struct{}{}
	})

	var budgets []domain.Budget
	seen := make(map[string]bool)
	for _, rec := range list {
		if _, ok := known[rec.CategoryID]; !ok {
			continue
		}
		if !rec.Limit.Positive() {
			continue
		}
		if seen[rec.CategoryID] {
			continue
		}
		seen[rec.CategoryID] = true

		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		budgets = append(budgets, domain.Budget{
			ID:         id,
			CategoryID: rec.CategoryID,
			Limit:      rec.Limit.Value,
		})
	}
	return budgets
}

// NormalizeExpenses resolves each expense's category by id, then by legacy
// category name, then falls back to the first category. Entries with no
// resolvable category or a non-positive amount are dropped.
func NormalizeExpenses(list []ExpenseRecord, categories []domain.Category) []domain.Expense {
	byID := lo.SliceToMap(categories, func(c domain.Category) (string, domain.Category) {
		return c.ID, c
	})

	var expenses []domain.Expense
	for _, rec := range list {
		if !rec.Amount.Positive() {
			continue
		}

		categoryID := ""
		if _, ok := byID[rec.CategoryID]; ok {
			categoryID = rec.CategoryID
		} else if rec.Category != "" {
			if match, ok := lo.Find(categories, func(c domain.Category) bool {
				return strings.EqualFold(c.Name, rec.Category)
			}); ok {
				categoryID = match.ID
			}
		}
		if categoryID == "" && len(categories) > 0 {
			categoryID = categories[0].ID
		}
		if categoryID == "" {
			continue
		}

		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		expenses = append(expenses, domain.Expense{
			ID:         id,
			CategoryID: categoryID,
			Amount:     rec.Amount.Value,
			Date:       rec.Date,
			Title:      rec.Title,
		})
	}
	return expenses
}

// NormalizeGoals seeds an empty goal collection with defaults, drops goals
// with a non-positive target, and clamps the saved amount to zero or above.
func NormalizeGoals(list []GoalRecord) []domain.Goal {
	if len(list) == 0 {
		return lo.Map(defaultGoals, func(g struct {
			name   string
			target int64
		}, _ int) domain.Goal {
			return domain.Goal{
				ID:           uuid.NewString(),
				Name:         g.name,
				TargetAmount: decimal.NewFromInt(g.target),
			}
		})
	}

	var goals []domain.Goal
	for _, rec := range list {
		if !rec.TargetAmount.Positive() {
			continue
		}
		saved := rec.SavedAmount.OrZero()
		if saved.IsNegative() {
			saved = decimal.Zero
		}
		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		goals = append(goals, domain.Goal{
			ID:            id,
			Name:          rec.Name,
			TargetAmount:  rec.TargetAmount.Value,
			SavedAmount:   saved,
			Contributions: rec.Contributions,
		})
	}
	return goals
}
