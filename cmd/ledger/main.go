package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/guroosh/ledger/internal/api"
	"github.com/guroosh/ledger/internal/config"
	"github.com/guroosh/ledger/internal/database"
	"github.com/guroosh/ledger/internal/domain"
	"github.com/guroosh/ledger/internal/export"
	"github.com/guroosh/ledger/internal/ledger"
	"github.com/guroosh/ledger/internal/snapshot"
	"github.com/guroosh/ledger/internal/store"
	"github.com/guroosh/ledger/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "ledger",
		Usage: "personal finance ledger service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API with the snapshot worker",
				Action: runServe,
			},
			{
				Name:   "snapshot",
				Usage:  "generate one snapshot and exit",
				Action: runSnapshot,
			},
			{
				Name:  "export",
				Usage: "write the current report as an XLSX workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Value: "ledger.xlsx",
						Usage: "output file path",
					},
				},
				Action: runExport,
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup connects to the database, migrates the schema, and builds the ledger
// service for the configured profile. Every command starts here.
func setup(ctx context.Context, cfg config.Config) (*pgxpool.Pool, *ledger.Service, *snapshot.Service, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, errors.New("DATABASE_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	pgStore := store.NewPg(pool)
	if _, err := pgStore.EnsureProfile(ctx, cfg.Profile, cfg.Profile); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	ledgerSvc := ledger.NewService(pgStore, cfg.Profile, domain.NewFormatter(cfg.Currency))
	snapshotSvc := snapshot.NewService(ledgerSvc, snapshot.NewPgRepository(pool))
	return pool, ledgerSvc, snapshotSvc, nil
}

func runServe(c *cli.Context) error {
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	cfg := config.Load()

	pool, ledgerSvc, snapshotSvc, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	var hook worker.AfterSnapshotHook
	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentialsJSON != "" {
		writer, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsJSON)
		if err != nil {
			return fmt.Errorf("creating sheets writer: %w", err)
		}
		hook = writer
	}

	snapshotWorker := worker.NewSnapshotWorker(snapshotSvc, cfg.Profile, cfg.SnapshotInterval, hook)
	go snapshotWorker.Run(ctx)

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, generate endpoint is unprotected")
	}

	srv := api.NewServer(cfg.HTTPPort, ledgerSvc, snapshotSvc, cfg.Profile, cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runSnapshot(c *cli.Context) error {
	ctx := c.Context
	cfg := config.Load()

	pool, _, snapshotSvc, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	now := time.Now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	report, err := snapshotSvc.Generate(ctx, cfg.Profile, date)
	if err != nil {
		return fmt.Errorf("generating snapshot: %w", err)
	}

	log.Printf("Snapshot saved for %s (coverage %s%%, portfolio %s)",
		date.Format("2006-01-02"), report.Coverage, report.Totals.PortfolioDisplay)
	return nil
}

func runExport(c *cli.Context) error {
	ctx := c.Context
	cfg := config.Load()

	pool, ledgerSvc, _, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	report, err := ledgerSvc.BuildReport(ctx)
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	out := c.String("out")
	if err := export.WriteWorkbook(report, out); err != nil {
		return err
	}

	log.Printf("Workbook written to %s", out)
	return nil
}
