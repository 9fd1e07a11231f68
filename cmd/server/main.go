package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/deluca-mike/bang-game/internal/config"
	"github.com/deluca-mike/bang-game/internal/registry"
	"github.com/deluca-mike/bang-game/internal/server"
	"github.com/deluca-mike/bang-game/internal/store"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting bang server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var snapshots server.Snapshots
	var snapshotStore *store.Store
	if cfg.Database.URL != "" {
		snapshotStore, err = store.New(ctx, cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer snapshotStore.Close()
		snapshots = snapshotStore
		logger.Info("snapshot store initialized")
	} else {
		logger.Warn("no database configured; matches live in memory only")
	}

	reg := registry.New(cfg.Registry.MemoryTTL, registry.SystemClock{}, logger)
	go reg.Run(ctx, cfg.Registry.PurgeInterval)
	logger.Info("match registry initialized",
		zap.Duration("memory_ttl", cfg.Registry.MemoryTTL),
		zap.Duration("purge_interval", cfg.Registry.PurgeInterval),
	)

	if snapshotStore != nil {
		go purgeStoredMatches(ctx, snapshotStore, cfg.Registry, logger)
	}

	srv := server.New(reg, snapshots, logger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("starting HTTP server", zap.String("address", cfg.Server.Address))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(serveErr))
		}
	}()

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", zap.Error(err))
	}

	logger.Info("bang server stopped")
}

// purgeStoredMatches drops snapshots whose matches have been idle past the
// storage TTL.
func purgeStoredMatches(ctx context.Context, s *store.Store, cfg config.RegistryConfig, logger *zap.Logger) {
	ticker := time.NewTicker(cfg.PurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-cfg.StorageTTL)
			if _, err := s.PurgeOlderThan(ctx, cutoff); err != nil {
				logger.Error("snapshot purge failed", zap.Error(err))
			}
		}
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
