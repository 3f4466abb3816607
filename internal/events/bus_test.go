package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func added(hash string) *DownloadAdded {
	return &DownloadAdded{BaseEvent: NewBaseEvent(EventDownloadAdded, EntityDownload, 0), Hash: hash}
}

func action(args string) *PluginAction {
	return &PluginAction{BaseEvent: NewBaseEvent(EventPluginAction, EntityPlugin, 0), Action: "audiobook", Args: args}
}

// drain collects n events from ch or fails after a second.
func drain(t *testing.T, ch <-chan Event, n int) []Event {
	t.Helper()
	out := make([]Event, 0, n)
	deadline := time.After(time.Second)
	for len(out) < n {
		select {
		case e := <-ch:
			out = append(out, e)
		case <-deadline:
			t.Fatalf("got %d of %d events", len(out), n)
		}
	}
	return out
}

func TestBus_RoutesByType(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	downloads := bus.Subscribe(EventDownloadAdded, 10)
	actions := bus.Subscribe(EventPluginAction, 10)
	ctx := context.Background()

	require.NoError(t, bus.Publish(ctx, added("abc")))
	require.NoError(t, bus.Publish(ctx, action("book 1")))

	got := drain(t, downloads, 1)[0].(*DownloadAdded)
	assert.Equal(t, "abc", got.Hash)
	assert.Equal(t, "book 1", drain(t, actions, 1)[0].(*PluginAction).Args)
	assert.Empty(t, downloads)
	assert.Empty(t, actions)
}

func TestBus_SubscribeAllSeesEveryType(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	all := bus.SubscribeAll(10)
	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, added("abc")))
	require.NoError(t, bus.Publish(ctx, action("book 1")))

	got := drain(t, all, 2)
	assert.Equal(t, EventDownloadAdded, got[0].EventType())
	assert.Equal(t, EventPluginAction, got[1].EventType())
}

func TestBus_UnsubscribeClosesOnlyThatChannel(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	gone := bus.Subscribe(EventDownloadAdded, 10)
	kept := bus.Subscribe(EventDownloadAdded, 10)
	bus.Unsubscribe(gone)
	bus.Unsubscribe(gone)

	require.NoError(t, bus.Publish(context.Background(), added("abc")))

	_, ok := <-gone
	assert.False(t, ok)
	assert.Len(t, drain(t, kept, 1), 1)
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	all := bus.SubscribeAll(100)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = bus.Publish(context.Background(), action(string(rune('a'+i))))
		}()
	}
	wg.Wait()

	assert.Len(t, drain(t, all, 20), 20)
}

func TestBus_PersistsBeforeDelivery(t *testing.T) {
	log := NewEventLog(setupTestDB(t))
	bus := NewBus(log, nil)
	defer bus.Close()

	require.NoError(t, bus.Publish(context.Background(), action("book 1")))

	stored, err := log.Recent(10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, EventPluginAction, stored[0].EventType)
	assert.Equal(t, EntityPlugin, stored[0].EntityType)
	assert.Contains(t, stored[0].Payload, `"action":"audiobook"`)
}

func TestBus_FullSubscriberDropsEvent(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	slow := bus.Subscribe(EventDownloadAdded, 1)
	fast := bus.Subscribe(EventDownloadAdded, 10)
	for _, h := range []string{"a", "b", "c"} {
		require.NoError(t, bus.Publish(context.Background(), added(h)))
	}

	assert.Len(t, slow, 1)
	assert.Equal(t, "a", (<-slow).(*DownloadAdded).Hash)
	assert.Len(t, drain(t, fast, 3), 3)
}

func TestBus_CloseClosesChannels(t *testing.T) {
	bus := NewBus(nil, nil)
	ch := bus.Subscribe(EventDownloadAdded, 1)
	all := bus.SubscribeAll(1)

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	_, ok := <-ch
	assert.False(t, ok)
	_, ok = <-all
	assert.False(t, ok)

	// Publishing after close is a no-op.
	assert.NoError(t, bus.Publish(context.Background(), added("late")))

	late := bus.Subscribe(EventDownloadAdded, 1)
	_, ok = <-late
	assert.False(t, ok)
}
