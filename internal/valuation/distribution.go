package valuation

import (
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/guroosh/ledger/internal/domain"
)

// CategorySlice is the current value held in one asset category.
type CategorySlice struct {
	Category domain.AssetCategory `json:"category"`
	Value    decimal.Decimal      `json:"value"`
}

// Distribution is the portfolio's current value broken down by category.
type Distribution struct {
	Slices []CategorySlice `json:"slices"`
	Total  decimal.Decimal `json:"total"`
}

// Distribute sums current values per asset category. Categories with no
// holdings are omitted; slices follow the fixed category display order.
func Distribute(assets []domain.Asset) Distribution {
	byCategory := lo.GroupBy(assets, func(a domain.Asset) domain.AssetCategory {
		return a.Category
	})

	var dist Distribution
	for _, cat := range domain.AssetCategories() {
		group, ok := byCategory[cat]
		if !ok {
			continue
		}
		value := lo.Reduce(group, func(acc decimal.Decimal, a domain.Asset, _ int) decimal.Decimal {
			return acc.Add(CurrentValue(a))
		}, decimal.Zero)
		dist.Slices = append(dist.Slices, CategorySlice{Category: cat, Value: value})
		dist.Total = dist.Total.Add(value)
	}

	// Holdings in unrecognized categories still count towards the total.
	unknown := lo.Filter(lo.Keys(byCategory), func(cat domain.AssetCategory, _ int) bool {
		return !lo.Contains(domain.AssetCategories(), cat)
	})
	slices.Sort(unknown)
	for _, cat := range unknown {
		value := lo.Reduce(byCategory[cat], func(acc decimal.Decimal, a domain.Asset, _ int) decimal.Decimal {
			return acc.Add(CurrentValue(a))
		}, decimal.Zero)
		dist.Slices = append(dist.Slices, CategorySlice{Category: cat, Value: value})
		dist.Total = dist.Total.Add(value)
	}

	return dist
}
