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

	"github.com/user/house-eternal/config"
	"github.com/user/house-eternal/internal/api"
	"github.com/user/house-eternal/internal/game"
	"github.com/user/house-eternal/internal/storage"
	"github.com/user/house-eternal/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "./config/config.json", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logger
	logger := setupLogger(cfg.Server.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	tables, err := loadTables(cfg.Game.DataDir)
	if err != nil {
		return err
	}
	logger.Info("Loaded world tables",
		zap.Int("cultures", len(tables.Cultures)),
		zap.Int("traits", len(tables.Traits)),
		zap.Int("events", len(tables.Events)))

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()
	logger.Info("Opened save storage", zap.String("driver", cfg.Storage.Driver))

	// Initialize game manager
	gameManager := game.NewGameManager(cfg, tables, store)
	gameManager.SetLogger(logger)
	defer gameManager.WaitForSaves()

	driver := game.NewDriver(gameManager, cfg.Game.TickInterval())
	apiServer := api.NewServer(gameManager, logger)
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: apiServer.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return driver.Run(ctx)
	})
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func setupLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, _ := config.Build()
	return logger
}

func loadTables(dir string) (*world.Tables, error) {
	if dir == "" {
		return world.Default(), nil
	}
	tables, err := world.NewDataLoader(os.DirFS(dir)).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load world tables from %s: %w", dir, err)
	}
	return tables, nil
}
