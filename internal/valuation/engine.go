package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/guroosh/ledger/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CurrentValue computes the present value of a holding.
//
// Real estate carries a total price, so CurrentPrice is used directly, with
// the legacy Amount field as fallback. Everything else is per-unit: price
// times owned amount when both are present, otherwise the legacy Amount,
// otherwise the bare price, otherwise zero. The chain tolerates
// partially-specified records from older clients and must not be shortened.
func CurrentValue(a domain.Asset) decimal.Decimal {
	return valueFrom(a, a.CurrentPrice)
}

// PurchaseValue computes the value of a holding at purchase time, using the
// same fallback chain as CurrentValue with BuyPrice in place of CurrentPrice.
func PurchaseValue(a domain.Asset) decimal.Decimal {
	return valueFrom(a, a.BuyPrice)
}

func valueFrom(a domain.Asset, price domain.LooseNumber) decimal.Decimal {
	if a.IsRealEstate() {
		if price.Valid {
			return price.Value
		}
		return a.Amount.OrZero()
	}
	if price.Valid && a.AmountOwned.Valid {
		return price.Value.Mul(a.AmountOwned.Value)
	}
	if a.Amount.Valid {
		return a.Amount.Value
	}
	if price.Valid {
		return price.Value
	}
	return decimal.Zero
}

// Delta describes the performance of a single holding.
type Delta struct {
	Current  decimal.Decimal `json:"current"`
	Purchase decimal.Decimal `json:"purchase"`
	Diff     decimal.Decimal `json:"diff"`
	Pct      decimal.Decimal `json:"pct"`
}

// PerformanceDelta computes current vs purchase value and the percentage
// return. A zero purchase value yields 0%, never a division error.
func PerformanceDelta(a domain.Asset) Delta {
	current := CurrentValue(a)
	purchase := PurchaseValue(a)
	diff := current.Sub(purchase)

	pct := decimal.Zero
	if !purchase.IsZero() {
		pct = diff.Div(purchase).Mul(hundred)
	}

	return Delta{
		Current:  current,
		Purchase: purchase,
		Diff:     diff,
		Pct:      pct,
	}
}

// PricePerSquareMeter returns the current value per square meter for a real
// estate holding, or nil when the asset is not real estate or has no
// positive area recorded. A missing area is not an error.
func PricePerSquareMeter(a domain.Asset) *decimal.Decimal {
	if !a.IsRealEstate() {
		return nil
	}
	if !a.AreaSqm.Positive() {
		return nil
	}
	v := CurrentValue(a).Div(a.AreaSqm.Value)
	return &v
}
