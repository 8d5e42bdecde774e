package domain

// AssetCategory classifies an investment holding.
type AssetCategory string

const (
	AssetStock      AssetCategory = "Stock"
	AssetRealEstate AssetCategory = "Real Estate"
	AssetCrypto     AssetCategory = "Crypto"
	AssetGold       AssetCategory = "Gold"
)

// AssetCategories lists the supported holding categories in display order.
func AssetCategories() []AssetCategory {
	return []AssetCategory{AssetStock, AssetRealEstate, AssetCrypto, AssetGold}
}

// Asset is a tracked investment holding. Price fields are per-unit for every
// category except real estate, where BuyPrice and CurrentPrice are totals for
// the whole property. Records created by older clients may carry only Amount
// (a pre-computed total value), so every numeric field is loose.
type Asset struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     AssetCategory `json:"category"`
	AmountOwned  LooseNumber   `json:"amountOwned"`
	UnitLabel    string        `json:"unitLabel,omitempty"`
	BuyPrice     LooseNumber   `json:"buyPrice"`
	CurrentPrice LooseNumber   `json:"currentPrice"`
	AreaSqm      LooseNumber   `json:"areaSqm,omitempty"`
	Amount       LooseNumber   `json:"amount,omitempty"`
}

// IsRealEstate reports whether the asset is valued as a whole property
// rather than per unit.
func (a Asset) IsRealEstate() bool {
	return a.Category == AssetRealEstate
}
