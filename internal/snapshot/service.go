package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/guroosh/ledger/internal/ledger"
)

// ReportBuilder defines the ledger report generation interface.
type ReportBuilder interface {
	BuildReport(ctx context.Context) (ledger.Report, error)
}

// Service manages snapshot generation and retrieval.
type Service struct {
	reports ReportBuilder
	repo    Repository
}

// NewService creates a new snapshot Service.
func NewService(reports ReportBuilder, repo Repository) *Service {
	if reports == nil {
		panic("snapshot.NewService: reports is nil")
	}
	if repo == nil {
		panic("snapshot.NewService: repo is nil")
	}
	return &Service{reports: reports, repo: repo}
}

// Generate builds the current ledger report and stores it under the given
// profile and date, replacing any snapshot already saved for that date.
func (s *Service) Generate(ctx context.Context, slug string, date time.Time) (ledger.Report, error) {
	profileID, err := s.repo.GetProfileID(ctx, slug)
	if err != nil {
		return ledger.Report{}, fmt.Errorf("getting profile: %w", err)
	}

	report, err := s.reports.BuildReport(ctx)
	if err != nil {
		return ledger.Report{}, fmt.Errorf("building report: %w", err)
	}

	data, err := json.Marshal(report)
	if err != nil {
		return ledger.Report{}, fmt.Errorf("marshaling report: %w", err)
	}

	if err := s.repo.Save(ctx, profileID, date, data); err != nil {
		return ledger.Report{}, fmt.Errorf("saving snapshot: %w", err)
	}

	return report, nil
}

// GetLatest retrieves the most recent snapshot for the profile.
func (s *Service) GetLatest(ctx context.Context, slug string) (*Snapshot, error) {
	return s.repo.GetLatest(ctx, slug)
}

// GetByDate retrieves a snapshot for a specific date.
func (s *Service) GetByDate(ctx context.Context, slug string, date time.Time) (*Snapshot, error) {
	return s.repo.GetByDate(ctx, slug, date)
}

// List retrieves recent snapshots.
func (s *Service) List(ctx context.Context, slug string, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, slug, limit)
}
