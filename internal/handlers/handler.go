// Package handlers hosts the plugins: bus subscribers that react to host
// events and plugin commands.
package handlers

import (
	"context"
	"log/slog"

	"github.com/vmunix/mpplugins/internal/config"
	"github.com/vmunix/mpplugins/internal/events"
)

// Handler processes events of specific types.
type Handler interface {
	// Start begins processing events (blocking).
	Start(ctx context.Context) error

	// Name returns handler name for logging.
	Name() string
}

// PluginInfo describes a plugin for listings.
type PluginInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Enabled     bool   `json:"enabled"`
}

// Plugin is a handler users can configure and list.
type Plugin interface {
	Handler

	// Info describes the plugin and its current state.
	Info() PluginInfo

	// Commands returns the chat commands the plugin answers, if any.
	Commands() []Command

	// ApplyConfig (re)initializes the plugin from cfg. It runs at startup and
	// after every config reload.
	ApplyConfig(ctx context.Context, cfg *config.Config) error
}

// BaseHandler provides common handler functionality.
type BaseHandler struct {
	bus    *events.Bus
	logger *slog.Logger
}

// NewBaseHandler creates a base handler.
func NewBaseHandler(bus *events.Bus, logger *slog.Logger) *BaseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseHandler{
		bus:    bus,
		logger: logger,
	}
}

// Bus returns the event bus.
func (h *BaseHandler) Bus() *events.Bus {
	return h.bus
}

// Logger returns the handler's logger.
func (h *BaseHandler) Logger() *slog.Logger {
	return h.logger
}

// publish emits e, logging failures.
func (h *BaseHandler) publish(ctx context.Context, e events.Event) {
	if err := h.bus.Publish(ctx, e); err != nil {
		h.logger.Error("failed to publish event", "type", e.EventType(), "error", err)
	}
}
