package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pg implements Store with PostgreSQL, one jsonb row per (profile, key).
type Pg struct {
	pool *pgxpool.Pool
}

// NewPg creates a new PostgreSQL-backed store.
func NewPg(pool *pgxpool.Pool) *Pg {
	return &Pg{pool: pool}
}

func (s *Pg) Get(ctx context.Context, profile, key string) (json.RawMessage, error) {
	var value json.RawMessage
	err := s.pool.QueryRow(ctx,
		`SELECT ls.value
		 FROM ledger_state ls
		 JOIN profiles p ON p.id = ls.profile_id
		 WHERE p.slug = $1 AND ls.key = $2`, profile, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting %s/%s: %w", profile, key, err)
	}
	return value, nil
}

func (s *Pg) Set(ctx context.Context, profile, key string, value json.RawMessage) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO ledger_state (profile_id, key, value)
		 SELECT p.id, $2, $3::jsonb FROM profiles p WHERE p.slug = $1
		 ON CONFLICT (profile_id, key)
		 DO UPDATE SET value = $3::jsonb, updated_at = NOW()`,
		profile, key, value)
	if err != nil {
		return fmt.Errorf("setting %s/%s: %w", profile, key, err)
	}
	// The SELECT produces no rows when the profile is missing; surfacing that
	// keeps a mistyped profile from silently dropping writes.
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("setting %s/%s: profile not found", profile, key)
	}
	return nil
}

// EnsureProfile creates the profile row if it does not exist and returns its id.
func (s *Pg) EnsureProfile(ctx context.Context, slug, name string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO profiles (slug, name)
		 VALUES ($1, $2)
		 ON CONFLICT (slug) DO UPDATE SET name = $2
		 RETURNING id`, slug, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensuring profile %s: %w", slug, err)
	}
	return id, nil
}
