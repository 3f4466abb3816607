package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// EventLog persists bus traffic to the events table. Times are stored in
// UTC so occurred_at compares correctly as text.
type EventLog struct {
	db *sql.DB
}

// NewEventLog creates a new event log.
func NewEventLog(db *sql.DB) *EventLog {
	return &EventLog{db: db}
}

// Append persists an event and returns its ID.
func (l *EventLog) Append(e Event) (int64, error) {
	return l.AppendContext(context.Background(), e)
}

// AppendContext is Append bound to ctx.
func (l *EventLog) AppendContext(ctx context.Context, e Event) (int64, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("marshal event: %w", err)
	}

	result, err := l.db.ExecContext(ctx, `
		INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.EventType(), e.EntityType(), e.EntityID(), string(payload), e.OccurredAt().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return result.LastInsertId()
}

// RawEvent represents a persisted event with its raw payload.
type RawEvent struct {
	ID         int64     `json:"id"`
	EventType  string    `json:"event_type"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Payload    string    `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

const selectEvents = `SELECT id, event_type, entity_type, entity_id, payload, occurred_at, created_at FROM events `

// Since returns all events since the given time, oldest first.
func (l *EventLog) Since(t time.Time) ([]RawEvent, error) {
	return l.query(selectEvents+`WHERE occurred_at >= ? ORDER BY id ASC`, t.UTC())
}

// ForEntity returns all events for a specific entity, oldest first.
func (l *EventLog) ForEntity(entityType string, entityID int64) ([]RawEvent, error) {
	return l.query(selectEvents+`WHERE entity_type = ? AND entity_id = ? ORDER BY id ASC`, entityType, entityID)
}

// Recent returns the newest limit events, newest first.
func (l *EventLog) Recent(limit int) ([]RawEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	return l.query(selectEvents+`ORDER BY id DESC LIMIT ?`, limit)
}

// RecentOfType is Recent restricted to one event type.
func (l *EventLog) RecentOfType(eventType string, limit int) ([]RawEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	return l.query(selectEvents+`WHERE event_type = ? ORDER BY id DESC LIMIT ?`, eventType, limit)
}

// Prune deletes events that occurred more than olderThan ago and reports
// how many went.
func (l *EventLog) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	result, err := l.db.Exec(`DELETE FROM events WHERE occurred_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return result.RowsAffected()
}

func (l *EventLog) query(q string, args ...any) ([]RawEvent, error) {
	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []RawEvent
	for rows.Next() {
		var e RawEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.EntityType, &e.EntityID, &e.Payload, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
