package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"donorhub/internal/adapter/repo"
	"donorhub/internal/archive"
	"donorhub/internal/infra"
	"donorhub/internal/report"
	"donorhub/internal/storage"
)

// The worker archives the configured reports for the previous month on a
// fixed interval.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()
	db := infra.OpenSQLDB(pool)
	defer db.Close()

	programs, err := infra.LoadPrograms(cfg.ProgramsFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to load programs")
	}

	types, err := archive.ParseTypes(cfg.ArchiveReports)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: invalid ARCHIVE_REPORTS")
	}

	archiveStore, err := storage.Open(ctx, storage.Options{
		Backend: cfg.ArchiveBackend,
		Path:    cfg.ArchivePath,
		Region:  cfg.AWSRegion,
		Bucket:  cfg.ArchiveS3Bucket,
		Prefix:  cfg.ArchiveS3Prefix,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}

	store := repo.NewStore(infra.NewSQLRunner(db, logger))
	reports := report.NewGenerator(store.Fetcher(), programs, logger)
	archiver := archive.New(reports, archiveStore, types, logger)

	logger.Info().
		Strs("reports", cfg.ArchiveReports).
		Str("backend", cfg.ArchiveBackend).
		Dur("interval", cfg.ArchiveInterval).
		Msg("worker started")

	if err := archiver.Run(ctx, cfg.ArchiveInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("worker stopped with error")
		return
	}
	logger.Info().Msg("worker stopped")
}
