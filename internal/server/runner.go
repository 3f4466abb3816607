// Package server provides the event-driven server components.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	v1 "github.com/vmunix/mpplugins/internal/api/v1"
	"github.com/vmunix/mpplugins/internal/config"
	"github.com/vmunix/mpplugins/internal/download"
	"github.com/vmunix/mpplugins/internal/enrich"
	"github.com/vmunix/mpplugins/internal/events"
	"github.com/vmunix/mpplugins/internal/handlers"
	"github.com/vmunix/mpplugins/internal/plugindata"
	"github.com/vmunix/mpplugins/internal/subscribe"
	"golang.org/x/sync/errgroup"
)

// Config for the event-driven server.
type Config struct {
	// ConfigPath is watched for changes and receives write-backs. Empty
	// disables both.
	ConfigPath string

	// Listener overrides the listen address from the app config.
	Listener net.Listener

	ShutdownTimeout time.Duration // default 30s
	PruneInterval   time.Duration // default 1h
	EventRetention  time.Duration // default 30 days
}

// Runner manages the event-driven components.
type Runner struct {
	db     *sql.DB
	config Config
	logger *slog.Logger

	mu      sync.Mutex
	app     *config.Config
	plugins []handlers.Plugin
}

// NewRunner creates a new runner for the app config app.
func NewRunner(db *sql.DB, app *config.Config, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = time.Hour
	}
	if cfg.EventRetention <= 0 {
		cfg.EventRetention = 30 * 24 * time.Hour
	}
	return &Runner{
		db:     db,
		config: cfg,
		logger: logger,
		app:    app,
	}
}

// Run starts all event-driven components and the HTTP API.
// It blocks until the context is canceled or an error occurs.
func (r *Runner) Run(ctx context.Context) error {
	// Create event bus with persistence
	eventLog := events.NewEventLog(r.db)
	bus := events.NewBus(eventLog, r.logger.With("component", "bus"))
	defer func() { _ = bus.Close() }()

	// Create stores
	downloads := download.NewStore(r.db)
	subs := subscribe.NewStore(r.db)
	history := enrich.NewHistory(plugindata.NewStore(r.db))

	// Create handlers
	sg := handlers.NewSubscribeGroupHandler(bus,
		enrich.New(downloads, subs, history, r.logger),
		r.config.ConfigPath, r.logger)
	ab := handlers.NewAudiobookHandler(bus, r.logger)
	messages := handlers.NewMessageHandler(bus, r.logger)
	r.mu.Lock()
	r.plugins = []handlers.Plugin{sg, ab}
	r.mu.Unlock()

	if err := r.apply(ctx, r.app); err != nil {
		return err
	}

	api, err := v1.New(v1.ServerDeps{
		Downloads:     downloads,
		Subscriptions: subs,
		Bus:           bus,
		EventLog:      eventLog,
		History:       history,
		Audiobook:     ab,
		Plugins:       r.plugins,
	}, r.logger)
	if err != nil {
		return fmt.Errorf("create api: %w", err)
	}

	ln := r.config.Listener
	if ln == nil {
		addr := fmt.Sprintf("%s:%d", r.app.Server.Host, r.app.Server.Port)
		ln, err = net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
	}
	srv := &http.Server{Handler: api.Router(), ReadHeaderTimeout: 10 * time.Second}

	// Use errgroup to manage component lifecycle
	g, ctx := errgroup.WithContext(ctx)

	for _, h := range []handlers.Handler{sg, ab, messages} {
		g.Go(func() error {
			r.logger.Debug("handler started", "handler", h.Name())
			if err := h.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%s: %w", h.Name(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if r.config.ConfigPath != "" {
		w := config.NewWatcher(r.config.ConfigPath, r.logger)
		g.Go(func() error {
			err := w.Watch(ctx, func(cfg *config.Config) {
				if err := r.apply(ctx, cfg); err != nil {
					r.logger.Error("config reload failed", "error", err)
					return
				}
				r.logger.Info("config reloaded", "path", r.config.ConfigPath)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("config watcher: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		r.prune(ctx, eventLog)
		return nil
	})

	err = g.Wait()
	r.logger.Info("server stopped")
	return err
}

// Plugins returns the plugins once Run has created them.
func (r *Runner) Plugins() []handlers.Plugin {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.plugins
}

// apply (re)configures every plugin.
func (r *Runner) apply(ctx context.Context, cfg *config.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plugins {
		if err := p.ApplyConfig(ctx, cfg); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
	}
	r.app = cfg
	return nil
}

func (r *Runner) prune(ctx context.Context, log *events.EventLog) {
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := log.Prune(r.config.EventRetention)
			if err != nil {
				r.logger.Error("event prune failed", "error", err)
				continue
			}
			if n > 0 {
				r.logger.Info("events pruned", "count", n)
			}
		}
	}
}
