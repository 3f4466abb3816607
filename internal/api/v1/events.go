package v1

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vmunix/mpplugins/internal/events"
)

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be non-negative")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	var (
		raw []events.RawEvent
		err error
	)
	if eventType := r.URL.Query().Get("type"); eventType != "" {
		if !s.registry.Known(eventType) {
			writeError(w, http.StatusBadRequest, "UNKNOWN_EVENT_TYPE",
				fmt.Sprintf("unknown event type %q (known: %s)", eventType, strings.Join(s.registry.Types(), ", ")))
			return
		}
		raw, err = s.deps.EventLog.RecentOfType(eventType, limit)
	} else {
		raw, err = s.deps.EventLog.Recent(limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}

	resp := listEventsResponse{
		Items: make([]EventResponse, len(raw)),
		Total: len(raw),
		Limit: limit,
	}
	for i, e := range raw {
		resp.Items[i] = EventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Payload:    e.Payload,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
