package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/a2a"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/api"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/config"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/llm"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/profiler"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/research"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/store"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/templates"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	os.Exit(exitCode(logger, run(cfg, logger)))
}

// exitCode logs a failed run and flushes the logger before the process exits.
func exitCode(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("server failed", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	return code
}

func run(cfg *config.Config, logger *zap.Logger) error {
	model, err := llm.New(cfg.ModelProvider, cfg.ModelOptions())
	if err != nil {
		return err
	}
	if closer, ok := model.(io.Closer); ok {
		defer closer.Close()
	}

	avatars, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer avatars.Close()

	lib, err := templates.Load()
	if err != nil {
		return err
	}

	var fetchOpts []research.FetcherOption
	if cfg.ScrapingBeeAPIKey != "" {
		fetchOpts = append(fetchOpts, research.WithScrapingBee(cfg.ScrapingBeeAPIKey))
	}
	var aggOpts []research.Option
	if cfg.ResearchCacheDir != "" {
		cache, err := research.OpenCache(cfg.ResearchCacheDir, cfg.ResearchCacheTTL)
		if err != nil {
			return err
		}
		defer cache.Close()
		aggOpts = append(aggOpts, research.WithCache(cache))
	}
	aggregator := research.NewAggregator(research.NewHTTPFetcher(cfg.FetchTimeout, fetchOpts...), logger.Named("research"), aggOpts...)
	assembler := profiler.NewAssembler(model, logger.Named("profiler"), profiler.WithMaxConcurrency(cfg.MaxFacetConcurrency))

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(logger.Named("http")))

	api.NewServer(aggregator, assembler, avatars, lib, logger.Named("api")).Register(router)
	a2a.NewA2AHandler(aggregator, assembler, logger.Named("a2a")).Register(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Customer Avatar Agent starting",
			zap.String("port", cfg.Port),
			zap.String("provider", cfg.ModelProvider),
			zap.String("database", avatars.Path()))
		logger.Info("Agent card available at: http://localhost:" + cfg.Port + "/.well-known/agent.json")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
