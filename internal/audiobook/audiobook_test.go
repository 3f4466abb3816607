package audiobook

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mpplugins/internal/audiobook/mocks"
	"github.com/vmunix/mpplugins/internal/emby"
	"go.uber.org/mock/gomock"
)

type inbox struct {
	mu   sync.Mutex
	msgs []Message
}

func (b *inbox) notify(_ context.Context, m Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, m)
}

func (b *inbox) titles() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, m := range b.msgs {
		out = append(out, m.Title)
	}
	return out
}

func baseConfig() Config {
	return Config{Enabled: true, LibraryID: "lib", MsgType: "Plugin"}
}

func newOrganizer(t *testing.T, cfg Config) (*Organizer, *mocks.MockLibrary, *inbox) {
	t.Helper()
	ctrl := gomock.NewController(t)
	lib := mocks.NewMockLibrary(ctrl)
	box := &inbox{}
	o := New(lib, box.notify, nil)
	o.Configure(cfg)
	return o, lib, box
}

func intp(n int) *int { return &n }

var refAlbum = emby.AlbumFields{
	Album:             "Three Body",
	AlbumID:           "500",
	Artists:           []string{"Liu Cixin"},
	AlbumArtist:       "Liu Cixin",
	ParentIndexNumber: intp(1),
}

func TestParseArgs(t *testing.T) {
	book, ep, err := ParseArgs("ThreeBody 3")
	require.NoError(t, err)
	assert.Equal(t, "ThreeBody", book)
	assert.Equal(t, 3, ep)

	for _, bad := range []string{"", "ThreeBody", "Three Body 3", "ThreeBody x", "ThreeBody 0", "ThreeBody -1"} {
		_, _, err := ParseArgs(bad)
		assert.ErrorIs(t, err, ErrUsage, bad)
	}
}

func TestRun_Disabled(t *testing.T) {
	o, _, box := newOrganizer(t, Config{})

	_, err := o.Run(context.Background(), Request{Args: "book 1"})
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Empty(t, box.titles(), "disabled plugin stays silent")
}

func TestRun_NoLibrary(t *testing.T) {
	cfg := baseConfig()
	cfg.LibraryID = ""
	o, _, box := newOrganizer(t, cfg)

	_, err := o.Run(context.Background(), Request{Args: "book 1", Channel: "telegram", User: "42"})
	assert.ErrorIs(t, err, ErrNoLibrary)
	require.Len(t, box.msgs, 1)
	assert.Equal(t, "audiobook library id is not configured", box.msgs[0].Title)
	assert.Equal(t, "telegram", box.msgs[0].Channel)
	assert.Equal(t, "42", box.msgs[0].User)
}

func TestRun_BadArgs(t *testing.T) {
	o, _, box := newOrganizer(t, baseConfig())

	_, err := o.Run(context.Background(), Request{Args: "onlybook"})
	assert.ErrorIs(t, err, ErrUsage)
	assert.Equal(t, []string{"usage: /ab <book> <episode>"}, box.titles())
}

func TestRun_BookNotFound(t *testing.T) {
	o, lib, box := newOrganizer(t, baseConfig())
	lib.EXPECT().Items(gomock.Any(), "lib").Return([]emby.Item{{ID: "1", Name: "Dune"}}, nil)

	_, err := o.Run(context.Background(), Request{Args: "Foundation 1"})
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.Len(t, box.msgs, 1)
}

func TestRun_EmptyLibrary(t *testing.T) {
	o, lib, _ := newOrganizer(t, baseConfig())
	lib.EXPECT().Items(gomock.Any(), "lib").Return(nil, nil)

	_, err := o.Run(context.Background(), Request{Args: "Dune 1"})
	assert.ErrorIs(t, err, ErrEmptyLibrary)
}

func TestRun_LibraryError(t *testing.T) {
	o, lib, _ := newOrganizer(t, baseConfig())
	boom := errors.New("connection refused")
	lib.EXPECT().Items(gomock.Any(), "lib").Return(nil, boom)

	_, err := o.Run(context.Background(), Request{Args: "Dune 1"})
	assert.ErrorIs(t, err, boom)
}

func TestRun_EpisodeOutOfRange(t *testing.T) {
	o, lib, _ := newOrganizer(t, baseConfig())
	lib.EXPECT().Items(gomock.Any(), "lib").Return([]emby.Item{{ID: "b", Name: "Dune"}}, nil)
	lib.EXPECT().Items(gomock.Any(), "b").Return([]emby.Item{{ID: "e1"}}, nil)

	_, err := o.Run(context.Background(), Request{Args: "Dune 5"})
	assert.ErrorIs(t, err, ErrEpisodeOutside)
}

func TestRun_UpdatesEpisodes(t *testing.T) {
	cfg := baseConfig()
	cfg.Notify = true
	o, lib, box := newOrganizer(t, cfg)

	lib.EXPECT().Items(gomock.Any(), "lib").Return([]emby.Item{
		{ID: "x", Name: "Other Book"},
		{ID: "b", Name: "Three Body (Full Cast)"},
	}, nil)
	lib.EXPECT().Items(gomock.Any(), "b").Return([]emby.Item{
		{ID: "e1", Name: "filename", AlbumFields: emby.AlbumFields{Album: "e1"}},
		{ID: "e2", Name: "Chapter 2", AlbumFields: refAlbum},
		{ID: "e3", Name: "Chapter 3", AlbumFields: emby.AlbumFields{Album: "junk"}},
	}, nil)

	lib.EXPECT().ItemInfo(gomock.Any(), "e1").Return(emby.ItemInfo{"Id": "e1", "Name": "filename", "Path": "/a/001 Intro.mp3"}, nil)
	lib.EXPECT().ItemInfo(gomock.Any(), "e3").Return(emby.ItemInfo{"Id": "e3", "Name": "Chapter 3", "Path": "/a/003.mp3"}, nil)

	var updated []emby.ItemInfo
	lib.EXPECT().UpdateItem(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, info emby.ItemInfo) error {
			updated = append(updated, info)
			return nil
		}).Times(2)

	report, err := o.Run(context.Background(), Request{Args: "Three 2"})
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "Three Body (Full Cast)", report.Book)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Failed)

	require.Len(t, updated, 2)
	assert.Equal(t, "Three Body", updated[0]["Album"])
	assert.Equal(t, 1, updated[0]["IndexNumber"])
	assert.Equal(t, "001 Intro", updated[0]["Name"], "placeholder name replaced by file stem")
	assert.Equal(t, 3, updated[1]["IndexNumber"])
	assert.Equal(t, "Chapter 3", updated[1]["Name"], "real names are kept without rename")

	require.Len(t, box.msgs, 1)
	assert.Equal(t, "Audiobook Three Body (Full Cast) organized", box.msgs[0].Title)
	assert.Equal(t, "updated 2, skipped 1, failed 0", box.msgs[0].Text)
	assert.Equal(t, "Plugin", box.msgs[0].Type)
}

func TestRun_Rename(t *testing.T) {
	cfg := baseConfig()
	cfg.Rename = true
	o, lib, box := newOrganizer(t, cfg)

	lib.EXPECT().Items(gomock.Any(), "lib").Return([]emby.Item{{ID: "b", Name: "Dune"}}, nil)
	lib.EXPECT().Items(gomock.Any(), "b").Return([]emby.Item{
		{ID: "e1", Name: "01 Prologue", AlbumFields: refAlbum},
		{ID: "e2", Name: "Track 2", AlbumFields: refAlbum},
	}, nil)
	lib.EXPECT().ItemInfo(gomock.Any(), "e1").Return(emby.ItemInfo{"Name": "01 Prologue", "Path": "/d/01 Prologue.m4a"}, nil)
	lib.EXPECT().ItemInfo(gomock.Any(), "e2").Return(emby.ItemInfo{"Name": "Track 2", "Path": "/d/02 Arrakis.m4a"}, nil)
	lib.EXPECT().UpdateItem(gomock.Any(), "e2", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, info emby.ItemInfo) error {
			assert.Equal(t, "02 Arrakis", info.Name())
			return nil
		})

	report, err := o.Run(context.Background(), Request{Args: "Dune 1"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Skipped, "already named after its file")
	assert.Empty(t, box.msgs, "notify off")
}

func TestRun_FailuresAreCounted(t *testing.T) {
	o, lib, _ := newOrganizer(t, baseConfig())

	lib.EXPECT().Items(gomock.Any(), "lib").Return([]emby.Item{{ID: "b", Name: "Dune"}}, nil)
	lib.EXPECT().Items(gomock.Any(), "b").Return([]emby.Item{
		{ID: "e1", AlbumFields: refAlbum},
		{ID: "e2"},
		{ID: "e3"},
	}, nil)
	lib.EXPECT().ItemInfo(gomock.Any(), "e2").Return(nil, emby.ErrNotFound)
	lib.EXPECT().ItemInfo(gomock.Any(), "e3").Return(emby.ItemInfo{"Name": "x"}, nil)
	lib.EXPECT().UpdateItem(gomock.Any(), "e3", gomock.Any()).Return(errors.New("emby API error: 500"))

	report, err := o.Run(context.Background(), Request{Args: "Dune 1"})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 2, report.Failed)
}

func TestRun_ThrottleHonoursCancel(t *testing.T) {
	cfg := baseConfig()
	cfg.Throttle = time.Hour
	o, lib, _ := newOrganizer(t, cfg)

	lib.EXPECT().Items(gomock.Any(), "lib").Return([]emby.Item{{ID: "b", Name: "Dune"}}, nil)
	lib.EXPECT().Items(gomock.Any(), "b").Return([]emby.Item{
		{ID: "e1", AlbumFields: refAlbum},
		{ID: "e2"},
		{ID: "e3"},
	}, nil)
	lib.EXPECT().ItemInfo(gomock.Any(), gomock.Any()).Return(emby.ItemInfo{"Name": "x"}, nil).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	lib.EXPECT().UpdateItem(gomock.Any(), "e2", gomock.Any()).
		DoAndReturn(func(context.Context, string, emby.ItemInfo) error {
			cancel()
			return nil
		})

	report, err := o.Run(ctx, Request{Args: "Dune 1"})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Updated)
}

func TestFindBook(t *testing.T) {
	items := []emby.Item{
		{ID: "1", Name: "The Hobbit"},
		{ID: "2", Name: "三体 (广播剧)"},
		{ID: "3", Name: "Foundation and Empire"},
	}

	got, ok := findBook(items, "三体")
	require.True(t, ok)
	assert.Equal(t, "2", got.ID)

	got, ok = findBook(items, "hobbit")
	require.True(t, ok, "cleaned containment is case-insensitive")
	assert.Equal(t, "1", got.ID)

	got, ok = findBook(items, "Foundaton and Empire")
	require.True(t, ok, "fuzzy fallback")
	assert.Equal(t, "3", got.ID)

	_, ok = findBook(items, "Neuromancer")
	assert.False(t, ok)
}
