package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target. SavedAmount is never negative after
// normalization but may exceed TargetAmount.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	SavedAmount   decimal.Decimal `json:"savedAmount"`
	Contributions []Contribution  `json:"contributions,omitempty"`
}

// Contribution records one successful deposit towards a goal.
type Contribution struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
	At     time.Time       `json:"at"`
}
