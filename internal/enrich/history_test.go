package enrich

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mpplugins/internal/plugindata"
	"github.com/vmunix/mpplugins/pkg/release"
)

func TestProcessedKey(t *testing.T) {
	assert.Equal(t, "series:1396", ProcessedKey(release.MediaSeries, 1396))
	assert.Equal(t, "movie:550", ProcessedKey(release.MediaMovie, 550))
}

func TestHistory_AddContainsClear(t *testing.T) {
	h := NewHistory(plugindata.NewStore(setupTestDB(t)))
	ctx := context.Background()

	list, err := h.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, h.Add(ctx, "series:1"))
	require.NoError(t, h.Add(ctx, "series:2"))
	require.NoError(t, h.Add(ctx, "series:1"))

	ok, err := h.Contains(ctx, "series:1")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err = h.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"series:1", "series:2"}, list)

	require.NoError(t, h.Clear(ctx))
	ok, err = h.Contains(ctx, "series:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistory_PersistsAcrossInstances(t *testing.T) {
	store := plugindata.NewStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, NewHistory(store).Add(ctx, "series:7"))

	ok, err := NewHistory(store).Contains(ctx, "series:7")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHistory_ReserveIsAtomic(t *testing.T) {
	h := NewHistory(plugindata.NewStore(setupTestDB(t)))
	ctx := context.Background()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := h.Reserve(ctx, "series:42")
			if err == nil && ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	list, err := h.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"series:42"}, list)
}
