package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownType is returned for event types no constructor is registered for.
var ErrUnknownType = errors.New("unknown event type")

// Registry maps event type names to constructors so stored payloads can be
// decoded into their concrete types, and so callers can reject type names
// that will never occur.
type Registry struct {
	ctors map[string]func() Event
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]func() Event)}
}

// Register binds eventType to ctor. The set is fixed at startup, so binding
// a type twice panics.
func (r *Registry) Register(eventType string, ctor func() Event) {
	if _, dup := r.ctors[eventType]; dup {
		panic("events: type registered twice: " + eventType)
	}
	r.ctors[eventType] = ctor
}

// Known reports whether eventType is registered.
func (r *Registry) Known(eventType string) bool {
	_, ok := r.ctors[eventType]
	return ok
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.ctors))
	for t := range r.ctors {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Unmarshal decodes raw into its concrete event.
func (r *Registry) Unmarshal(raw RawEvent) (Event, error) {
	ctor, ok := r.ctors[raw.EventType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, raw.EventType)
	}
	e := ctor()
	if err := json.Unmarshal([]byte(raw.Payload), e); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", raw.EventType, err)
	}
	return e, nil
}

// DefaultRegistry knows every event published in this module.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(EventDownloadAdded, func() Event { return &DownloadAdded{} })
	r.Register(EventPluginAction, func() Event { return &PluginAction{} })
	r.Register(EventMessagePosted, func() Event { return &MessagePosted{} })
	r.Register(EventSubscriptionEnriched, func() Event { return &SubscriptionEnriched{} })
	r.Register(EventEnrichmentSkipped, func() Event { return &EnrichmentSkipped{} })
	r.Register(EventAudiobookOrganized, func() Event { return &AudiobookOrganized{} })
	return r
}
