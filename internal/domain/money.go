package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// SafeParse parses a string into a decimal, returning zero for invalid or empty input.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// LooseNumber is a decimal that tolerates the loosely-typed payloads found in
// persisted ledger state: JSON numbers, numeric strings, null, missing fields,
// or garbage. Anything unparseable is simply invalid, never an error.
type LooseNumber struct {
	Value decimal.Decimal
	Valid bool
}

// Num creates a valid LooseNumber from a decimal.
func Num(d decimal.Decimal) LooseNumber {
	return LooseNumber{Value: d, Valid: true}
}

// NumFromString creates a LooseNumber by parsing s; unparseable input yields an invalid number.
func NumFromString(s string) LooseNumber {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return LooseNumber{}
	}
	return LooseNumber{Value: d, Valid: true}
}

// OrZero returns the value, or decimal zero when invalid.
func (n LooseNumber) OrZero() decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Value
}

// Positive reports whether the number is valid and strictly greater than zero.
func (n LooseNumber) Positive() bool {
	return n.Valid && n.Value.IsPositive()
}

// UnmarshalJSON accepts a JSON number, a numeric string, null, or anything
// else; only the first two produce a valid number.
func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = LooseNumber{}
		return nil
	}
	raw := string(data)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = LooseNumber{}
			return nil
		}
		*n = NumFromString(s)
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		*n = LooseNumber{}
		return nil
	}
	*n = LooseNumber{Value: d, Valid: true}
	return nil
}

// MarshalJSON encodes the value as a JSON number, or null when invalid.
func (n LooseNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(n.Value.String()), nil
}
