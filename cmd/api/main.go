package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"donorhub/internal/adapter/repo"
	"donorhub/internal/archive"
	"donorhub/internal/http/handlers"
	httpapi "donorhub/internal/http/httpapi"
	"donorhub/internal/infra"
	"donorhub/internal/infra/geoip"
	"donorhub/internal/middleware"
	"donorhub/internal/report"
	"donorhub/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "api")

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()
	db := infra.OpenSQLDB(dbpool)
	defer db.Close()

	programs, err := infra.LoadPrograms(cfg.ProgramsFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load programs")
	}

	store := repo.NewStore(infra.NewSQLRunner(db, logger))
	reports := report.NewGenerator(store.Fetcher(), programs, logger)

	var archiver *archive.Archiver
	archiveStore, err := storage.Open(ctx, storage.Options{
		Backend: cfg.ArchiveBackend,
		Path:    cfg.ArchivePath,
		Region:  cfg.AWSRegion,
		Bucket:  cfg.ArchiveS3Bucket,
		Prefix:  cfg.ArchiveS3Prefix,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("report archive disabled")
	} else {
		archiver = archive.New(reports, archiveStore, nil, logger)
	}

	redisClient, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, rate limiting per process")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var limiter middleware.Limiter
	if cfg.RateLimitPerMin > 0 {
		limiter = middleware.NewLimiter(redisClient, cfg.RateLimitPerMin, time.Minute)
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable")
	} else if resolver != nil {
		defer resolver.Close()
		lookup = resolver.CountryCode
	}

	app := &handlers.App{
		Logger:     logger,
		DB:         db,
		Donations:  store.Donations,
		Volunteers: store.Volunteers,
		Users:      store.Users,
		Reports:    reports,
		Archiver:   archiver,
		Programs:   programs,
	}
	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Limiter:        limiter,
		CountryLookup:  lookup,
		DefaultLocale:  "en",
		Logger:         logger,
	})

	server := infra.NewHTTPServer(cfg, router, logger)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
