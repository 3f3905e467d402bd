package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/citymood/vibescout/internal/config"
	domcat "github.com/citymood/vibescout/internal/domain/catalog"
	logpkg "github.com/citymood/vibescout/internal/logger"
	"github.com/citymood/vibescout/internal/metrics"
	catalogrepo "github.com/citymood/vibescout/internal/repository/catalog"
	chiTransport "github.com/citymood/vibescout/internal/transport/chi"
	healthuc "github.com/citymood/vibescout/internal/usecase/health"
	matchuc "github.com/citymood/vibescout/internal/usecase/match"
	"github.com/citymood/vibescout/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting vibescout API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	ctx := context.Background()
	source, pinger := createSource(cfg, logger)

	// The catalog is loaded exactly once; the engine serves from
	// memory for its whole lifetime.
	cat, err := source.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded",
		zap.Int("venues", cat.Len()),
		zap.Int("tags", cat.TagCount()),
		zap.Int("dimensions", cat.Dimensions()),
	)

	// Register engine metrics explicitly (no init())
	metrics.RegisterMatchMetrics()
	metrics.CatalogVenues.Set(float64(cat.Len()))
	metrics.CatalogTags.Set(float64(cat.TagCount()))

	engine := matchuc.New(cat, cfg.Scoring.ToScoring(), nil)
	healthSvc := healthuc.New(catalogInfo{cat}, pinger)

	server := chiTransport.NewServer(engine, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiTransport.RequestIDMiddleware)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// createSource builds the configured catalog source. Redis sources
// also serve as the health pinger; file sources have nothing to ping.
func createSource(cfg config.Config, logger *zap.Logger) (catalogrepo.Source, healthuc.SourcePinger) {
	switch cfg.Catalog.Source {
	case "redis":
		src, err := catalogrepo.NewRedisSource(catalogrepo.RedisConfig{
			Addrs:    cfg.Catalog.Addrs,
			Password: cfg.Catalog.Password,
			Key:      cfg.Catalog.Key,
		})
		if err != nil {
			logger.Fatal("Failed to create redis source", zap.Error(err))
		}
		timeout := time.Duration(cfg.Catalog.ReadinessTimeout) * time.Second
		if err := src.WaitForReady(context.Background(), timeout); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Catalog.Addrs))
		return src, src
	default:
		return catalogrepo.NewFileSource(cfg.Catalog.Path), nil
	}
}

// catalogInfo adapts the loaded catalog to the health service.
type catalogInfo struct {
	cat domcat.Catalog
}

func (c catalogInfo) Len() int      { return c.cat.Len() }
func (c catalogInfo) TagCount() int { return c.cat.TagCount() }
