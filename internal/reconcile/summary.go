package reconcile

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/guroosh/ledger/internal/domain"
)

// Status is the budget health of one category.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusOver     Status = "over"
	StatusNoBudget Status = "no-budget"
	StatusDisabled Status = "disabled"
)

var (
	hundred     = decimal.NewFromInt(100)
	progressCap = decimal.NewFromInt(150)
	warnRatio   = decimal.RequireFromString("0.75")
)

// Summary is the computed spend picture for one category.
type Summary struct {
	Category  domain.Category `json:"category"`
	Spent     decimal.Decimal `json:"spent"`
	HasBudget bool            `json:"hasBudget"`
	Limit     decimal.Decimal `json:"limit,omitempty"`
	// Progress is spent/limit as a percentage, capped at 150 so an
	// over-budget bar stays bounded. Without a budget it is pinned to 100,
	// which renders a full flat bar.
	Progress    decimal.Decimal `json:"progress"`
	Status      Status          `json:"status"`
	StatusLabel string          `json:"statusLabel,omitempty"`
}

// Summarize computes spend, progress, and status for one category.
// A manual spend override on the category takes precedence over the expense
// sum. Disabling a category only changes the displayed status; the spend
// math is untouched.
func Summarize(cat domain.Category, expenses []domain.Expense, budgets []domain.Budget) Summary {
	s := Summary{Category: cat, Spent: spentFor(cat, expenses)}

	budget, hasBudget := lo.Find(budgets, func(b domain.Budget) bool {
		return b.CategoryID == cat.ID && b.Limit.IsPositive()
	})

	if hasBudget {
		s.HasBudget = true
		s.Limit = budget.Limit
		ratio := s.Spent.Div(budget.Limit)
		s.Progress = decimal.Min(ratio.Mul(hundred), progressCap)
		switch {
		case s.Spent.GreaterThan(budget.Limit):
			s.Status = StatusOver
		case ratio.GreaterThan(warnRatio) && s.Spent.LessThan(budget.Limit):
			s.Status = StatusWarning
		default:
			s.Status = StatusOK
		}
	} else {
		s.Status = StatusNoBudget
		s.StatusLabel = "No budget set"
		s.Progress = hundred
	}

	if !cat.Enabled {
		s.Status = StatusDisabled
		s.StatusLabel = "Disabled"
	}

	return s
}

// SummarizeAll computes summaries for every category and orders them:
// enabled categories first, then higher spend first within each group.
func SummarizeAll(categories []domain.Category, expenses []domain.Expense, budgets []domain.Budget) []Summary {
	summaries := lo.Map(categories, func(cat domain.Category, _ int) Summary {
		return Summarize(cat, expenses, budgets)
	})

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.Category.Enabled != b.Category.Enabled {
			return a.Category.Enabled
		}
		return a.Spent.GreaterThan(b.Spent)
	})

	return summaries
}

// Coverage is total spend against total budget as a percentage, capped at
// 150. With no budgeted amount it is zero.
func Coverage(summaries []Summary, budgets []domain.Budget) decimal.Decimal {
	totalBudget := lo.Reduce(budgets, func(acc decimal.Decimal, b domain.Budget, _ int) decimal.Decimal {
		return acc.Add(b.Limit)
	}, decimal.Zero)
	if !totalBudget.IsPositive() {
		return decimal.Zero
	}

	totalSpent := lo.Reduce(summaries, func(acc decimal.Decimal, s Summary, _ int) decimal.Decimal {
		return acc.Add(s.Spent)
	}, decimal.Zero)

	return decimal.Min(totalSpent.Div(totalBudget).Mul(hundred), progressCap)
}

func spentFor(cat domain.Category, expenses []domain.Expense) decimal.Decimal {
	if cat.ManualSpent.Valid {
		return cat.ManualSpent.Value
	}
	return lo.Reduce(expenses, func(acc decimal.Decimal, e domain.Expense, _ int) decimal.Decimal {
		if e.CategoryID != cat.ID {
			return acc
		}
		return acc.Add(e.Amount)
	}, decimal.Zero)
}
