package goal

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/guroosh/ledger/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Progress is percentage complete for a goal, capped at 100. A goal without
// a positive target reports zero.
func Progress(g domain.Goal) decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(g.SavedAmount.Div(g.TargetAmount).Mul(hundred), hundred)
}

// Remaining is the amount still needed to reach the target, never negative.
func Remaining(g domain.Goal) decimal.Decimal {
	return decimal.Max(g.TargetAmount.Sub(g.SavedAmount), decimal.Zero)
}

// AverageCompletion is the arithmetic mean of each goal's progress,
// zero when there are no goals.
func AverageCompletion(goals []domain.Goal) decimal.Decimal {
	if len(goals) == 0 {
		return decimal.Zero
	}
	sum := lo.Reduce(goals, func(acc decimal.Decimal, g domain.Goal, _ int) decimal.Decimal {
		return acc.Add(Progress(g))
	}, decimal.Zero)
	return sum.Div(decimal.NewFromInt(int64(len(goals))))
}

// ValidateDeposit checks a deposit amount before it is applied.
func ValidateDeposit(amount domain.LooseNumber) domain.Result {
	if !amount.Valid {
		return domain.Fail("deposit amount must be a number")
	}
	if !amount.Value.IsPositive() {
		return domain.Fail("deposit amount must be greater than zero")
	}
	return domain.Ok("deposit amount is valid")
}
