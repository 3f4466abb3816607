package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/mpplugins/internal/config"
	"github.com/vmunix/mpplugins/internal/enrich"
	"github.com/vmunix/mpplugins/internal/events"
)

// SubscribeGroupHandler fills subscription rules when downloads are added.
type SubscribeGroupHandler struct {
	*BaseHandler
	enricher   *enrich.Enricher
	configPath string // written back after a history clear; empty disables
}

// NewSubscribeGroupHandler creates the handler. configPath is the file the
// clear flag is reset in.
func NewSubscribeGroupHandler(bus *events.Bus, enricher *enrich.Enricher, configPath string, logger *slog.Logger) *SubscribeGroupHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubscribeGroupHandler{
		BaseHandler: NewBaseHandler(bus, logger.With("component", "subscribegroup")),
		enricher:    enricher,
		configPath:  configPath,
	}
}

// Name returns the handler name.
func (h *SubscribeGroupHandler) Name() string {
	return enrich.PluginID
}

// Info describes the plugin.
func (h *SubscribeGroupHandler) Info() PluginInfo {
	return PluginInfo{
		ID:          enrich.PluginID,
		Name:        "Subscription rule fill",
		Description: "Fills resolution, quality, effect, release group and site of series subscriptions from the first download.",
		Version:     "1.3",
		Enabled:     h.enricher.Config().Enabled,
	}
}

// Commands returns no commands; the plugin is event driven.
func (h *SubscribeGroupHandler) Commands() []Command { return nil }

// Enricher returns the underlying enricher.
func (h *SubscribeGroupHandler) Enricher() *enrich.Enricher { return h.enricher }

// ApplyConfig configures the enricher. A set clear flag erases the history
// and is flipped back to false in the config file.
func (h *SubscribeGroupHandler) ApplyConfig(ctx context.Context, cfg *config.Config) error {
	sg := cfg.Plugins.SubscribeGroup
	cleared, err := h.enricher.Configure(ctx, enrich.Config{
		Enabled:       sg.Enabled,
		Clear:         sg.Clear,
		UpdateDetails: sg.UpdateDetails,
	})
	if err != nil {
		return fmt.Errorf("configure subscribegroup: %w", err)
	}
	if cleared && h.configPath != "" {
		if err := config.SetValue(h.configPath, []string{"plugins", "subscribegroup", "clear"}, false); err != nil {
			return fmt.Errorf("reset clear flag: %w", err)
		}
		h.Logger().Info("clear flag reset", "path", h.configPath)
	}
	return nil
}

// Start begins processing events.
func (h *SubscribeGroupHandler) Start(ctx context.Context) error {
	added := h.Bus().Subscribe(events.EventDownloadAdded, 100)
	defer h.Bus().Unsubscribe(added)

	for {
		select {
		case e, ok := <-added:
			if !ok {
				return nil // Channel closed
			}
			if da, ok := e.(*events.DownloadAdded); ok {
				h.handleDownloadAdded(ctx, da)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *SubscribeGroupHandler) handleDownloadAdded(ctx context.Context, e *events.DownloadAdded) {
	res := h.enricher.Process(ctx, enrich.Request{Hash: e.Hash, Context: e.Context})

	// A batch stopped mid-way still has its earlier updates in the store.
	for _, u := range res.Updates {
		if u.Err != nil {
			continue
		}
		h.publish(ctx, &events.SubscriptionEnriched{
			BaseEvent:      events.NewBaseEvent(events.EventSubscriptionEnriched, events.EntitySubscription, u.SubscriptionID),
			SubscriptionID: u.SubscriptionID,
			Key:            res.Key,
			Resolution:     u.Fields.Resolution,
			Quality:        u.Fields.Quality,
			Effect:         u.Fields.Effect,
			Include:        u.Fields.Include,
			Sites:          u.Fields.Sites,
		})
	}
	if res.Outcome == enrich.Applied {
		return
	}

	reason := ""
	if res.Err != nil {
		reason = res.Err.Error()
	}
	h.Logger().Debug("download not enriched", "hash", e.Hash, "outcome", res.Outcome, "reason", reason)
	h.publish(ctx, &events.EnrichmentSkipped{
		BaseEvent: events.NewBaseEvent(events.EventEnrichmentSkipped, events.EntityDownload, 0),
		Hash:      e.Hash,
		Key:       res.Key,
		Outcome:   res.Outcome.String(),
		Reason:    reason,
	})
}
