package handlers

import (
	"context"
	"log/slog"

	"github.com/vmunix/mpplugins/internal/events"
)

// MessageHandler delivers plugin messages. There is no chat transport; the
// messages are logged and remain in the event log for clients to poll.
type MessageHandler struct {
	*BaseHandler
}

// NewMessageHandler creates a message handler.
func NewMessageHandler(bus *events.Bus, logger *slog.Logger) *MessageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageHandler{
		BaseHandler: NewBaseHandler(bus, logger.With("component", "messages")),
	}
}

// Name returns the handler name.
func (h *MessageHandler) Name() string {
	return "messages"
}

// Start begins processing events.
func (h *MessageHandler) Start(ctx context.Context) error {
	msgs := h.Bus().Subscribe(events.EventMessagePosted, 100)
	defer h.Bus().Unsubscribe(msgs)

	for {
		select {
		case e, ok := <-msgs:
			if !ok {
				return nil // Channel closed
			}
			if m, ok := e.(*events.MessagePosted); ok {
				h.Logger().Info("message",
					"channel", m.Channel,
					"user", m.User,
					"type", m.Type,
					"title", m.Title,
					"text", m.Text)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
