package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/vmunix/mpplugins/internal/config"
	"github.com/vmunix/mpplugins/internal/migrations"
	"github.com/vmunix/mpplugins/internal/server"
	_ "modernc.org/sqlite"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runServer(configPath string) error {
	if configPath == "" {
		p, err := config.Discover()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		configPath = p
	}

	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	lock, err := server.AcquireLock(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	logger.Info("server starting",
		"addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"config", configPath,
		"database", cfg.Database.Path,
		"lock", lock.Path(),
		"subscribegroup", cfg.Plugins.SubscribeGroup.Enabled,
		"audiobook", cfg.Plugins.Audiobook.Enabled,
		"log_level", cfg.Server.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := server.NewRunner(db, cfg, server.Config{ConfigPath: configPath}, logger)
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
