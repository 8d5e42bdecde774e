package smsparse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Message is the best-effort extraction from a bank notification text.
// It is advisory only: the caller lets the user correct every field before
// anything is committed to the ledger.
type Message struct {
	Amount   decimal.Decimal `json:"amount"`
	Merchant string          `json:"merchant,omitempty"`
	IsCredit bool            `json:"isCredit"`
}

var (
	amountRe   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:sr|sar)\b`)
	merchantRe = regexp.MustCompile(`(?i)\bat\s+([a-z0-9 ]+?)(?:\s+on\b|[^a-z0-9 ]|$)`)
	creditRe   = regexp.MustCompile(`(?i)credited|deposit|received`)
	debitRe    = regexp.MustCompile(`(?i)debited|purchase|spent|withdrawn`)
)

// Parse extracts amount, merchant, and direction from free-form SMS text.
// It never fails: unmatched fields come back as zero amount, empty merchant,
// and the credit direction. Text matching a debit keyword is a debit; text
// matching only credit keywords is a credit; text matching neither defaults
// to credit. Callers rely on that default, so it must not be flipped.
func Parse(text string) Message {
	msg := Message{}

	if m := amountRe.FindStringSubmatch(text); m != nil {
		// The regex only admits digits and a dot, so the parse cannot fail.
		msg.Amount, _ = decimal.NewFromString(m[1])
	}

	if m := merchantRe.FindStringSubmatch(text); m != nil {
		msg.Merchant = strings.TrimSpace(m[1])
	}

	switch {
	case debitRe.MatchString(text):
		msg.IsCredit = false
	case creditRe.MatchString(text):
		msg.IsCredit = true
	default:
		msg.IsCredit = true
	}

	return msg
}
