package v1

import (
	"context"
	"errors"

	"github.com/vmunix/mpplugins/internal/audiobook"
	"github.com/vmunix/mpplugins/internal/download"
	"github.com/vmunix/mpplugins/internal/events"
	"github.com/vmunix/mpplugins/internal/handlers"
	"github.com/vmunix/mpplugins/internal/subscribe"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// HistoryStore is the processed history of the subscribegroup plugin.
type HistoryStore interface {
	List(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

// AudiobookRunner runs /ab synchronously.
type AudiobookRunner interface {
	Run(ctx context.Context, req audiobook.Request) (*audiobook.Report, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Downloads     *download.Store
	Subscriptions *subscribe.Store
	Bus           *events.Bus

	// Optional dependencies (nil if not configured)
	EventLog  *events.EventLog
	History   HistoryStore
	Audiobook AudiobookRunner
	Plugins   []handlers.Plugin
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Downloads == nil {
		return errors.New("downloads store is required")
	}
	if d.Subscriptions == nil {
		return errors.New("subscriptions store is required")
	}
	if d.Bus == nil {
		return errors.New("event bus is required")
	}
	return nil
}
