package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound indicates that no value is stored under the requested key.
var ErrNotFound = errors.New("key not found")

// Collection keys under which the ledger collections are persisted. Stored
// payloads may be absent, malformed, or from an older schema; readers must
// normalize on every load.
const (
	KeyCategories = "categories"
	KeyBudgets    = "budgets"
	KeyExpenses   = "expenses"
	KeyGoals      = "goals"
	KeyAssets     = "assets"
)

// Store is the persisted key-value collaborator holding one JSON document
// per logical collection, scoped by profile.
type Store interface {
	Get(ctx context.Context, profile, key string) (json.RawMessage, error)
	Set(ctx context.Context, profile, key string, value json.RawMessage) error
}
