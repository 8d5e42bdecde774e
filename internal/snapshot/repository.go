package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that the requested snapshot was not found.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one stored ledger report.
type Snapshot struct {
	ID           int             `json:"id"`
	ProfileID    int             `json:"profileId"`
	SnapshotDate time.Time       `json:"snapshotDate"`
	Data         json.RawMessage `json:"data"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Repository defines persistent storage for ledger snapshots.
type Repository interface {
	Save(ctx context.Context, profileID int, date time.Time, data json.RawMessage) error
	GetLatest(ctx context.Context, profileSlug string) (*Snapshot, error)
	GetByDate(ctx context.Context, profileSlug string, date time.Time) (*Snapshot, error)
	List(ctx context.Context, profileSlug string, limit int) ([]Snapshot, error)
	GetProfileID(ctx context.Context, slug string) (int, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL snapshot repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, profileID int, date time.Time, data json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ledger_snapshots (profile_id, snapshot_date, data)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (profile_id, snapshot_date)
		 DO UPDATE SET data = $3::jsonb`,
		profileID, date, data)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (r *PgRepository) GetLatest(ctx context.Context, profileSlug string) (*Snapshot, error) {
	var s Snapshot
	err := r.pool.QueryRow(ctx,
		`SELECT ls.id, ls.profile_id, ls.snapshot_date, ls.data, ls.created_at
		 FROM ledger_snapshots ls
		 JOIN profiles p ON p.id = ls.profile_id
		 WHERE p.slug = $1
		 ORDER BY ls.snapshot_date DESC
		 LIMIT 1`, profileSlug).Scan(&s.ID, &s.ProfileID, &s.SnapshotDate, &s.Data, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting latest snapshot: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) GetByDate(ctx context.Context, profileSlug string, date time.Time) (*Snapshot, error) {
	var s Snapshot
	err := r.pool.QueryRow(ctx,
		`SELECT ls.id, ls.profile_id, ls.snapshot_date, ls.data, ls.created_at
		 FROM ledger_snapshots ls
		 JOIN profiles p ON p.id = ls.profile_id
		 WHERE p.slug = $1 AND ls.snapshot_date = $2`, profileSlug, date).
		Scan(&s.ID, &s.ProfileID, &s.SnapshotDate, &s.Data, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting snapshot by date: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) List(ctx context.Context, profileSlug string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	if limit > 365 {
		limit = 365
	}

	rows, err := r.pool.Query(ctx,
		`SELECT ls.id, ls.profile_id, ls.snapshot_date, ls.data, ls.created_at
		 FROM ledger_snapshots ls
		 JOIN profiles p ON p.id = ls.profile_id
		 WHERE p.slug = $1
		 ORDER BY ls.snapshot_date DESC
		 LIMIT $2`, profileSlug, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.SnapshotDate, &s.Data, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *PgRepository) GetProfileID(ctx context.Context, slug string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM profiles WHERE slug = $1`, slug).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("getting profile ID for %s: %w", slug, err)
	}
	return id, nil
}
