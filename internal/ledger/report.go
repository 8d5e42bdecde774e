package ledger

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/guroosh/ledger/internal/domain"
	"github.com/guroosh/ledger/internal/goal"
	"github.com/guroosh/ledger/internal/reconcile"
	"github.com/guroosh/ledger/internal/valuation"
)

// GoalView is a goal with its computed progress.
type GoalView struct {
	domain.Goal
	Progress  decimal.Decimal `json:"progress"`
	Remaining decimal.Decimal `json:"remaining"`
}

// AssetView is a holding with its computed valuation.
type AssetView struct {
	domain.Asset
	Delta       valuation.Delta  `json:"delta"`
	PricePerSqm *decimal.Decimal `json:"pricePerSqm,omitempty"`
}

// Totals carries the report's display-formatted aggregates.
type Totals struct {
	Spent            decimal.Decimal `json:"spent"`
	Budget           decimal.Decimal `json:"budget"`
	Portfolio        decimal.Decimal `json:"portfolio"`
	SpentDisplay     string          `json:"spentDisplay"`
	BudgetDisplay    string          `json:"budgetDisplay"`
	PortfolioDisplay string          `json:"portfolioDisplay"`
}

// Report is the composite picture the dashboard renders: ordered category
// summaries, budget coverage, goal progress, and portfolio valuation.
type Report struct {
	GeneratedAt        time.Time              `json:"generatedAt"`
	Currency           string                 `json:"currency"`
	Summaries          []reconcile.Summary    `json:"summaries"`
	Coverage           decimal.Decimal        `json:"coverage"`
	Goals              []GoalView             `json:"goals"`
	AverageGoalPercent decimal.Decimal        `json:"averageGoalPercent"`
	Assets             []AssetView            `json:"assets"`
	Distribution       valuation.Distribution `json:"distribution"`
	Totals             Totals                 `json:"totals"`
}

// BuildReport loads the current state and computes the full report.
func (s *Service) BuildReport(ctx context.Context) (Report, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return Report{}, err
	}
	return s.buildReport(st, time.Now().UTC()), nil
}

func (s *Service) buildReport(st State, at time.Time) Report {
	summaries := reconcile.SummarizeAll(st.Categories, st.Expenses, st.Budgets)

	totalSpent := lo.Reduce(summaries, func(acc decimal.Decimal, sum reconcile.Summary, _ int) decimal.Decimal {
		return acc.Add(sum.Spent)
	}, decimal.Zero)
	totalBudget := lo.Reduce(st.Budgets, func(acc decimal.Decimal, b domain.Budget, _ int) decimal.Decimal {
		return acc.Add(b.Limit)
	}, decimal.Zero)

	goals := lo.Map(st.Goals, func(g domain.Goal, _ int) GoalView {
		return GoalView{Goal: g, Progress: goal.Progress(g), Remaining: goal.Remaining(g)}
	})

	assets := lo.Map(st.Assets, func(a domain.Asset, _ int) AssetView {
		return AssetView{Asset: a, Delta: valuation.PerformanceDelta(a), PricePerSqm: valuation.PricePerSquareMeter(a)}
	})

	dist := valuation.Distribute(st.Assets)

	return Report{
		GeneratedAt:        at,
		Currency:           s.formatter.Currency(),
		Summaries:          summaries,
		Coverage:           reconcile.Coverage(summaries, st.Budgets),
		Goals:              goals,
		AverageGoalPercent: goal.AverageCompletion(st.Goals),
		Assets:             assets,
		Distribution:       dist,
		Totals: Totals{
			Spent:            totalSpent,
			Budget:           totalBudget,
			Portfolio:        dist.Total,
			SpentDisplay:     s.formatter.Aggregate(totalSpent),
			BudgetDisplay:    s.formatter.Aggregate(totalBudget),
			PortfolioDisplay: s.formatter.Aggregate(dist.Total),
		},
	}
}
