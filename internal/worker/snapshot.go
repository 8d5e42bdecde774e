package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/guroosh/ledger/internal/ledger"
)

// SnapshotGenerator defines the interface for generating ledger snapshots.
type SnapshotGenerator interface {
	Generate(ctx context.Context, slug string, date time.Time) (ledger.Report, error)
}

// AfterSnapshotHook is called after each successful snapshot generation.
type AfterSnapshotHook interface {
	Export(ctx context.Context, report ledger.Report) error
}

// SnapshotWorker periodically generates ledger snapshots for one profile.
type SnapshotWorker struct {
	generator SnapshotGenerator
	profile   string
	interval  time.Duration
	hook      AfterSnapshotHook // optional
}

// NewSnapshotWorker creates a SnapshotWorker with an optional post-generation hook.
func NewSnapshotWorker(generator SnapshotGenerator, profile string, interval time.Duration, hook AfterSnapshotHook) *SnapshotWorker {
	return &SnapshotWorker{
		generator: generator,
		profile:   profile,
		interval:  interval,
		hook:      hook,
	}
}

// runHook calls the post-generation hook if one is configured.
func (w *SnapshotWorker) runHook(ctx context.Context, report ledger.Report) {
	if w.hook == nil {
		return
	}
	if err := w.hook.Export(ctx, report); err != nil {
		slog.Error("SnapshotWorker: export hook failed", "error", err)
	} else {
		slog.Info("SnapshotWorker: export hook completed")
	}
}

// utcDate returns the current date normalized to midnight UTC.
func utcDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Run starts the snapshot worker loop. It blocks until the context is cancelled.
func (w *SnapshotWorker) Run(ctx context.Context) {
	slog.Info("SnapshotWorker: starting", "profile", w.profile)

	// Generate immediately on startup
	if report, err := w.generator.Generate(ctx, w.profile, utcDate()); err != nil {
		slog.Error("SnapshotWorker: initial generation failed", "error", err)
	} else {
		slog.Info("SnapshotWorker: initial generation completed")
		w.runHook(ctx, report)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("SnapshotWorker: shutting down")
			return
		case <-ticker.C:
			if report, err := w.generator.Generate(ctx, w.profile, utcDate()); err != nil {
				slog.Error("SnapshotWorker: generation failed", "error", err)
			} else {
				slog.Info("SnapshotWorker: generation completed")
				w.runHook(ctx, report)
			}
		}
	}
}
