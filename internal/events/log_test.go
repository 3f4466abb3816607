package events

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mpplugins/internal/migrations"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)
	return db
}

func enriched(subID int64) *SubscriptionEnriched {
	res := "1080[pi]|x1080"
	return &SubscriptionEnriched{
		BaseEvent:      NewBaseEvent(EventSubscriptionEnriched, EntitySubscription, subID),
		SubscriptionID: subID,
		Key:            "series:100",
		Resolution:     &res,
	}
}

func TestEventLog_AppendRoundTripsThroughRegistry(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	id, err := log.Append(enriched(7))
	require.NoError(t, err)
	assert.Positive(t, id)

	stored, err := log.ForEntity(EntitySubscription, 7)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, id, stored[0].ID)
	assert.Equal(t, EventSubscriptionEnriched, stored[0].EventType)

	e, err := DefaultRegistry().Unmarshal(stored[0])
	require.NoError(t, err)
	got := e.(*SubscriptionEnriched)
	assert.Equal(t, "series:100", got.Key)
	require.NotNil(t, got.Resolution)
	assert.Equal(t, "1080[pi]|x1080", *got.Resolution)
}

func TestEventLog_ForEntityFilters(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	for _, id := range []int64{1, 2, 1} {
		_, err := log.Append(enriched(id))
		require.NoError(t, err)
	}

	stored, err := log.ForEntity(EntitySubscription, 1)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Less(t, stored[0].ID, stored[1].ID)

	stored, err = log.ForEntity(EntityDownload, 1)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestEventLog_SinceAcrossZones(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	e := enriched(1)
	e.At = time.Now().In(time.FixedZone("UTC+8", 8*3600))
	_, err := log.Append(e)
	require.NoError(t, err)

	stored, err := log.Since(time.Now().Add(-time.Minute).In(time.FixedZone("UTC-5", -5*3600)))
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	stored, err = log.Since(time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestEventLog_Prune(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)

	old := enriched(1)
	old.At = time.Now().Add(-40 * 24 * time.Hour)
	_, err := log.Append(old)
	require.NoError(t, err)
	_, err = log.Append(enriched(2))
	require.NoError(t, err)

	n, err := log.Prune(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := log.Since(time.Time{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, int64(2), left[0].EntityID)
}

func TestEventLog_RecentNewestFirst(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	for i := 1; i <= 5; i++ {
		_, err := log.Append(&MessagePosted{
			BaseEvent: NewBaseEvent(EventMessagePosted, EntityMessage, int64(i)),
			Title:     fmt.Sprintf("audiobook run %d", i),
		})
		require.NoError(t, err)
	}

	stored, err := log.Recent(3)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, []int64{5, 4, 3}, []int64{stored[0].EntityID, stored[1].EntityID, stored[2].EntityID})

	all, err := log.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
