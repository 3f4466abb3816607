package handlers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/vmunix/mpplugins/internal/audiobook"
	"github.com/vmunix/mpplugins/internal/config"
	"github.com/vmunix/mpplugins/internal/emby"
	"github.com/vmunix/mpplugins/internal/events"
)

// AudiobookHandler runs the /ab command against Emby.
type AudiobookHandler struct {
	*BaseHandler
	organizer *audiobook.Organizer
	emby      *embyRef
	embyOpts  []emby.Option
}

// NewAudiobookHandler creates the handler. The Emby client is built from the
// config in ApplyConfig; opts are passed to every client it builds.
func NewAudiobookHandler(bus *events.Bus, logger *slog.Logger, opts ...emby.Option) *AudiobookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &AudiobookHandler{
		BaseHandler: NewBaseHandler(bus, logger.With("component", "audiobook-handler")),
		emby:        &embyRef{},
		embyOpts:    opts,
	}
	h.emby.Store(emby.New("", ""))
	h.organizer = audiobook.New(h.emby, h.postMessage, logger)
	return h
}

// Name returns the handler name.
func (h *AudiobookHandler) Name() string {
	return "audiobook"
}

// Info describes the plugin.
func (h *AudiobookHandler) Info() PluginInfo {
	return PluginInfo{
		ID:          "audiobook",
		Name:        "Emby audiobook organizer",
		Description: "Gives every episode of an Emby audiobook the album of a reference episode.",
		Version:     "1.0",
		Enabled:     h.organizer.Config().Enabled,
	}
}

// Commands returns the /ab command.
func (h *AudiobookHandler) Commands() []Command {
	return []Command{{
		Cmd:         "/ab",
		Action:      audiobook.Action,
		Description: "organize emby audiobook",
		Category:    "audiobook",
	}}
}

// ApplyConfig rebuilds the Emby client and configures the organizer.
func (h *AudiobookHandler) ApplyConfig(_ context.Context, cfg *config.Config) error {
	opts := append([]emby.Option{emby.WithUser(cfg.Emby.User)}, h.embyOpts...)
	h.emby.Store(emby.New(cfg.Emby.URL, cfg.Emby.APIKey, opts...))

	ab := cfg.Plugins.Audiobook
	h.organizer.Configure(audiobook.Config{
		Enabled:   ab.Enabled,
		Notify:    ab.Notify,
		Rename:    ab.Rename,
		LibraryID: ab.LibraryID,
		MsgType:   ab.MsgType,
		Throttle:  ab.Throttle,
	})
	return nil
}

// Run organizes a book synchronously and publishes the outcome.
func (h *AudiobookHandler) Run(ctx context.Context, req audiobook.Request) (*audiobook.Report, error) {
	report, err := h.organizer.Run(ctx, req)
	if report != nil {
		h.publish(ctx, &events.AudiobookOrganized{
			BaseEvent: events.NewBaseEvent(events.EventAudiobookOrganized, events.EntityPlugin, 0),
			RunID:     report.RunID,
			Book:      report.Book,
			Updated:   report.Updated,
			Skipped:   report.Skipped,
			Failed:    report.Failed,
		})
	}
	return report, err
}

// Start begins processing plugin actions.
func (h *AudiobookHandler) Start(ctx context.Context) error {
	actions := h.Bus().Subscribe(events.EventPluginAction, 10)
	defer h.Bus().Unsubscribe(actions)

	for {
		select {
		case e, ok := <-actions:
			if !ok {
				return nil // Channel closed
			}
			pa, ok := e.(*events.PluginAction)
			if !ok || pa.Action != audiobook.Action {
				continue
			}
			_, err := h.Run(ctx, audiobook.Request{Args: pa.Args, Channel: pa.Channel, User: pa.User})
			if err != nil && !errors.Is(err, audiobook.ErrDisabled) {
				h.Logger().Warn("audiobook action failed", "args", pa.Args, "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *AudiobookHandler) postMessage(ctx context.Context, m audiobook.Message) {
	h.publish(ctx, &events.MessagePosted{
		BaseEvent: events.NewBaseEvent(events.EventMessagePosted, events.EntityMessage, 0),
		Channel:   m.Channel,
		User:      m.User,
		Type:      m.Type,
		Title:     m.Title,
		Text:      m.Text,
	})
}

// embyRef is a Library whose client can be swapped on reload.
type embyRef struct {
	atomic.Pointer[emby.Client]
}

func (r *embyRef) Items(ctx context.Context, parentID string) ([]emby.Item, error) {
	return r.Load().Items(ctx, parentID)
}

func (r *embyRef) ItemInfo(ctx context.Context, id string) (emby.ItemInfo, error) {
	return r.Load().ItemInfo(ctx, id)
}

func (r *embyRef) UpdateItem(ctx context.Context, id string, info emby.ItemInfo) error {
	return r.Load().UpdateItem(ctx, id, info)
}
