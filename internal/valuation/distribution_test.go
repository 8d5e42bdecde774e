package valuation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/guroosh/ledger/internal/domain"
)

func TestDistribute(t *testing.T) {
	assets := []domain.Asset{
		{Category: domain.AssetStock, CurrentPrice: num("10"), AmountOwned: num("5")},
		{Category: domain.AssetStock, CurrentPrice: num("20"), AmountOwned: num("2")},
		{Category: domain.AssetRealEstate, CurrentPrice: num("500000")},
		{Category: domain.AssetGold, Amount: num("300")},
	}

	dist := Distribute(assets)

	if !dist.Total.Equal(decimal.NewFromInt(500390)) {
		t.Errorf("Total = %s, want 500390", dist.Total)
	}

	want := map[domain.AssetCategory]string{
		domain.AssetStock:      "90",
		domain.AssetRealEstate: "500000",
		domain.AssetGold:       "300",
	}
	if len(dist.Slices) != len(want) {
		t.Fatalf("got %d slices, want %d", len(dist.Slices), len(want))
	}
	for _, s := range dist.Slices {
		if !s.Value.Equal(decimal.RequireFromString(want[s.Category])) {
			t.Errorf("slice %s = %s, want %s", s.Category, s.Value, want[s.Category])
		}
	}
}

func TestDistributeOrderAndEmpty(t *testing.T) {
	dist := Distribute(nil)
	if len(dist.Slices) != 0 || !dist.Total.IsZero() {
		t.Errorf("empty portfolio: got %+v", dist)
	}

	assets := []domain.Asset{
		{Category: domain.AssetGold, Amount: num("1")},
		{Category: domain.AssetStock, Amount: num("2")},
	}
	dist = Distribute(assets)
	if dist.Slices[0].Category != domain.AssetStock || dist.Slices[1].Category != domain.AssetGold {
		t.Errorf("slices not in display order: %+v", dist.Slices)
	}
}
