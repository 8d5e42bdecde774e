package valuation

import (
	"strings"

	"github.com/guroosh/ledger/internal/domain"
)

// ValidateNewAsset checks a form-submitted asset before it is stored.
// Failures are reported as a Result so the form can show the message inline.
func ValidateNewAsset(a domain.Asset) domain.Result {
	if strings.TrimSpace(a.Name) == "" {
		return domain.Fail("name is required")
	}

	if a.IsRealEstate() {
		if !a.AreaSqm.Positive() {
			return domain.Fail("area must be a positive number")
		}
	} else {
		if !a.AmountOwned.Positive() {
			return domain.Fail("owned amount must be a positive number")
		}
	}

	if !a.BuyPrice.Positive() {
		return domain.Fail("buy price must be a positive number")
	}
	if !a.CurrentPrice.Positive() {
		return domain.Fail("current price must be a positive number")
	}

	return domain.Ok("asset is valid")
}
