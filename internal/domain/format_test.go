package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewFormatterDefaultsCurrency(t *testing.T) {
	f := NewFormatter("")
	if f.Currency() != DefaultCurrency {
		t.Errorf("Currency() = %q, want %q", f.Currency(), DefaultCurrency)
	}
}

func TestAggregateRoundsToWholeUnits(t *testing.T) {
	f := NewFormatter("USD")

	got := f.Aggregate(decimal.RequireFromString("1234.56"))
	if got != "$1,235" {
		t.Errorf("Aggregate(1234.56) = %q, want $1,235", got)
	}

	got = f.Aggregate(decimal.Zero)
	if got != "$0" {
		t.Errorf("Aggregate(0) = %q, want $0", got)
	}
}

func TestUnitKeepsTwoFractionDigits(t *testing.T) {
	f := NewFormatter("USD")

	got := f.Unit(decimal.RequireFromString("12.3"))
	if got != "$12.30" {
		t.Errorf("Unit(12.3) = %q, want $12.30", got)
	}

	got = f.Unit(decimal.RequireFromString("0.456"))
	if got != "$0.46" {
		t.Errorf("Unit(0.456) = %q, want $0.46", got)
	}
}
