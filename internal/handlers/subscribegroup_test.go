package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mpplugins/internal/config"
	"github.com/vmunix/mpplugins/internal/download"
	"github.com/vmunix/mpplugins/internal/enrich"
	"github.com/vmunix/mpplugins/internal/events"
	"github.com/vmunix/mpplugins/internal/plugindata"
	"github.com/vmunix/mpplugins/internal/subscribe"
	"github.com/vmunix/mpplugins/pkg/release"
)

type sgFixture struct {
	bus       *events.Bus
	downloads *download.Store
	subs      *subscribe.Store
	handler   *SubscribeGroupHandler
}

func newSGFixture(t *testing.T, configPath string) *sgFixture {
	t.Helper()
	db := setupTestDB(t)
	bus := events.NewBus(events.NewEventLog(db), nil)
	t.Cleanup(func() { _ = bus.Close() })

	f := &sgFixture{
		bus:       bus,
		downloads: download.NewStore(db),
		subs:      subscribe.NewStore(db),
	}
	enricher := enrich.New(f.downloads, f.subs, enrich.NewHistory(plugindata.NewStore(db)), nil)
	f.handler = NewSubscribeGroupHandler(bus, enricher, configPath, nil)
	return f
}

func sgConfig(clear bool) *config.Config {
	cfg := &config.Config{}
	cfg.Plugins.SubscribeGroup = config.SubscribeGroupConfig{
		Enabled:       true,
		Clear:         clear,
		UpdateDetails: []string{"resource_type", "resource_pix", "resource_effect", "group"},
	}
	return cfg
}

func downloadAdded(hash string) *events.DownloadAdded {
	return &events.DownloadAdded{
		BaseEvent: events.NewBaseEvent(events.EventDownloadAdded, events.EntityDownload, 0),
		Hash:      hash,
		Context: &events.DownloadContext{
			TorrentInfo: &events.TorrentInfo{Site: "hdsky"},
			MetaInfo: &release.Meta{
				ResourcePix:  "2160p",
				ResourceType: "WEB-DL",
				ResourceTeam: "ADWeb",
			},
		},
	}
}

func TestSubscribeGroupHandler_EnrichesSubscription(t *testing.T) {
	ctx := context.Background()
	f := newSGFixture(t, "")
	require.NoError(t, f.handler.ApplyConfig(ctx, sgConfig(false)))

	require.NoError(t, f.downloads.Add(ctx, &download.Record{
		Hash: "abc", Type: release.MediaSeries, TMDBID: 100, Seasons: "S01", Title: "Show",
	}))
	sub := &subscribe.Subscription{Name: "Show", Type: release.MediaSeries, TMDBID: 100, Season: ptr(1)}
	require.NoError(t, f.subs.Add(ctx, sub))

	enriched := f.bus.Subscribe(events.EventSubscriptionEnriched, 10)
	startHandler(t, f.handler)

	require.NoError(t, f.bus.Publish(ctx, downloadAdded("abc")))

	e := waitFor(t, enriched).(*events.SubscriptionEnriched)
	assert.Equal(t, sub.ID, e.SubscriptionID)
	assert.Equal(t, "series:100", e.Key)
	require.NotNil(t, e.Resolution)
	assert.Equal(t, release.Pattern2160p, *e.Resolution)
	require.NotNil(t, e.Include)
	assert.Equal(t, "ADWeb", *e.Include)
	assert.Equal(t, []string{"hdsky"}, e.Sites)

	got, err := f.subs.Get(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "ADWeb", got.Include)
}

func TestSubscribeGroupHandler_PublishesSkipped(t *testing.T) {
	ctx := context.Background()
	f := newSGFixture(t, "")
	require.NoError(t, f.handler.ApplyConfig(ctx, sgConfig(false)))

	skipped := f.bus.Subscribe(events.EventEnrichmentSkipped, 10)
	startHandler(t, f.handler)

	require.NoError(t, f.bus.Publish(ctx, downloadAdded("missing")))

	e := waitFor(t, skipped).(*events.EnrichmentSkipped)
	assert.Equal(t, "missing", e.Hash)
	assert.Equal(t, "rejected", e.Outcome)
	assert.Contains(t, e.Reason, "download")
}

func TestSubscribeGroupHandler_PublishesUpdatesBeforeTypeMismatch(t *testing.T) {
	ctx := context.Background()
	f := newSGFixture(t, "")
	require.NoError(t, f.handler.ApplyConfig(ctx, sgConfig(false)))

	require.NoError(t, f.downloads.Add(ctx, &download.Record{
		Hash: "abc", Type: release.MediaSeries, TMDBID: 100, Seasons: "S01", Title: "Show",
	}))
	series := &subscribe.Subscription{Name: "Show", Type: release.MediaSeries, TMDBID: 100, Season: ptr(1)}
	require.NoError(t, f.subs.Add(ctx, series))
	movie := &subscribe.Subscription{Name: "Show (movie)", Type: release.MediaMovie, TMDBID: 100, Season: ptr(1)}
	require.NoError(t, f.subs.Add(ctx, movie))

	enriched := f.bus.Subscribe(events.EventSubscriptionEnriched, 10)
	skipped := f.bus.Subscribe(events.EventEnrichmentSkipped, 10)
	startHandler(t, f.handler)

	require.NoError(t, f.bus.Publish(ctx, downloadAdded("abc")))

	e := waitFor(t, enriched).(*events.SubscriptionEnriched)
	assert.Equal(t, series.ID, e.SubscriptionID)

	s := waitFor(t, skipped).(*events.EnrichmentSkipped)
	assert.Equal(t, "rejected", s.Outcome)
	assert.Contains(t, s.Reason, "not a series")

	got, err := f.subs.Get(ctx, series.ID)
	require.NoError(t, err)
	assert.Equal(t, "ADWeb", got.Include)
}

func TestSubscribeGroupHandler_ClearResetsConfig(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[plugins.subscribegroup]
enabled = true
clear = true
update_details = ["group"]
`), 0o644))

	f := newSGFixture(t, path)
	history := f.handler.Enricher().History()
	require.NoError(t, history.Add(ctx, "1_x"))

	require.NoError(t, f.handler.ApplyConfig(ctx, sgConfig(true)))

	keys, err := history.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	cfg, err := config.LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.False(t, cfg.Plugins.SubscribeGroup.Clear)
	assert.True(t, cfg.Plugins.SubscribeGroup.Enabled)
}

func TestSubscribeGroupHandler_Info(t *testing.T) {
	f := newSGFixture(t, "")
	info := f.handler.Info()
	assert.Equal(t, "subscribegroup", info.ID)
	assert.Equal(t, "1.3", info.Version)
	assert.False(t, info.Enabled)
	assert.Empty(t, f.handler.Commands())

	require.NoError(t, f.handler.ApplyConfig(context.Background(), sgConfig(false)))
	assert.True(t, f.handler.Info().Enabled)
}

func ptr[T any](v T) *T { return &v }
