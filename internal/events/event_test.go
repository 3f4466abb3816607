package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseEvent_Envelope(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	e := BaseEvent{Type: EventSubscriptionEnriched, Entity: EntitySubscription, ID: 42, At: at}

	var ev Event = e
	assert.Equal(t, EventSubscriptionEnriched, ev.EventType())
	assert.Equal(t, EntitySubscription, ev.EntityType())
	assert.Equal(t, int64(42), ev.EntityID())
	assert.Equal(t, at, ev.OccurredAt())
}

func TestNewBaseEvent_StampsUTC(t *testing.T) {
	e := NewBaseEvent(EventPluginAction, EntityPlugin, 0)

	assert.Equal(t, EventPluginAction, e.EventType())
	assert.Equal(t, time.UTC, e.OccurredAt().Location())
	assert.WithinDuration(t, time.Now(), e.OccurredAt(), time.Minute)
}

func TestDescribe(t *testing.T) {
	e := &DownloadAdded{BaseEvent: NewBaseEvent(EventDownloadAdded, EntityDownload, 0), Hash: "abc"}
	assert.Equal(t, "download.added download#0", Describe(e))
}
