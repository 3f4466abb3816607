// Package events carries plugin traffic: typed events, an in-process bus and
// a SQLite event log.
package events

import (
	"fmt"
	"time"
)

// What an event is about. Downloads are keyed by hash elsewhere, so their
// events carry entity id 0.
const (
	EntityDownload     = "download"
	EntitySubscription = "subscription"
	EntityPlugin       = "plugin"
	EntityMessage      = "message"
)

// Event is a message on the bus. The four accessors form the envelope the
// event log stores next to the JSON payload.
type Event interface {
	EventType() string
	EntityType() string
	EntityID() int64
	OccurredAt() time.Time
}

// BaseEvent is embedded by every concrete event.
type BaseEvent struct {
	Type   string    `json:"type"`
	Entity string    `json:"entity_type"`
	ID     int64     `json:"entity_id"`
	At     time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() int64       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// NewBaseEvent stamps an envelope with the current UTC time.
func NewBaseEvent(eventType, entity string, id int64) BaseEvent {
	return BaseEvent{Type: eventType, Entity: entity, ID: id, At: time.Now().UTC()}
}

// Describe renders e as "type entity#id" for log lines.
func Describe(e Event) string {
	return fmt.Sprintf("%s %s#%d", e.EventType(), e.EntityType(), e.EntityID())
}
