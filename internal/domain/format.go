package domain

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the display currency used when none is configured.
const DefaultCurrency = "SAR"

// Formatter renders monetary values for display. Aggregates (totals, spend,
// budgets) use zero fraction digits; per-unit prices keep two.
type Formatter struct {
	code string
}

// NewFormatter creates a Formatter for the given ISO currency code,
// falling back to the default currency for an empty code.
func NewFormatter(code string) Formatter {
	if code == "" {
		code = DefaultCurrency
	}
	return Formatter{code: code}
}

// Currency returns the formatter's currency code.
func (f Formatter) Currency() string { return f.code }

// currency resolves the go-money currency, which is never nil when obtained
// through the Money constructor (unknown codes get a generic definition).
func (f Formatter) currency() *money.Currency {
	return money.New(0, f.code).Currency()
}

// Aggregate formats a total with no fraction digits.
func (f Formatter) Aggregate(d decimal.Decimal) string {
	fm := *f.currency().Formatter()
	fm.Fraction = 0
	return fm.Format(d.Round(0).IntPart())
}

// Unit formats a per-unit price with two fraction digits.
func (f Formatter) Unit(d decimal.Decimal) string {
	fm := *f.currency().Formatter()
	fm.Fraction = 2
	return fm.Format(d.Shift(2).Round(0).IntPart())
}
