// Package audiobook repairs Emby audiobooks whose episodes were scanned as
// separate albums.
//
// Given a book and a reference episode, every episode of the book receives
// the reference episode's album, artist and composer fields and a sequential
// index. Episodes can optionally be renamed to their file name.
package audiobook

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmunix/mpplugins/internal/emby"
	"github.com/vmunix/mpplugins/pkg/release"
)

//go:generate mockgen -destination=mocks/mock_library.go -package=mocks . Library

// Action is the plugin action the /ab command maps to.
const Action = "audiobook"

// placeholderName is the name Emby gives items it could not read tags from.
const placeholderName = "filename"

// Library is the part of the Emby API the organizer uses.
type Library interface {
	Items(ctx context.Context, parentID string) ([]emby.Item, error)
	ItemInfo(ctx context.Context, id string) (emby.ItemInfo, error)
	UpdateItem(ctx context.Context, id string, info emby.ItemInfo) error
}

// Message is a user-facing notification.
type Message struct {
	Channel string
	User    string
	Type    string
	Title   string
	Text    string
}

// Notifier delivers messages to the user who issued a command.
type Notifier func(ctx context.Context, m Message)

// Config is the plugin configuration.
type Config struct {
	Enabled   bool
	Notify    bool
	Rename    bool
	LibraryID string
	MsgType   string
	Throttle  time.Duration
}

// Request is one /ab invocation.
type Request struct {
	Args    string
	Channel string
	User    string
}

// Report summarizes one run.
type Report struct {
	RunID   string `json:"run_id"`
	Book    string `json:"book"`
	BookID  string `json:"book_id"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// Organizer applies reference album metadata to every episode of a book.
type Organizer struct {
	lib    Library
	notify Notifier
	logger *slog.Logger

	mu  sync.RWMutex
	cfg Config

	run sync.Mutex // one run at a time
}

// New creates an Organizer. notify may be nil.
func New(lib Library, notify Notifier, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = slog.Default()
	}
	if notify == nil {
		notify = func(context.Context, Message) {}
	}
	return &Organizer{
		lib:    lib,
		notify: notify,
		logger: logger.With("component", "audiobook"),
	}
}

// Configure replaces the configuration.
func (o *Organizer) Configure(cfg Config) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cfg = cfg
}

// Config returns the active configuration.
func (o *Organizer) Config() Config {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cfg
}

// ParseArgs splits "<book> <episode>" into its parts. The episode is 1-based.
func ParseArgs(args string) (book string, episode int, err error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "", 0, ErrUsage
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		return "", 0, ErrUsage
	}
	return fields[0], n, nil
}

// Run organizes the book named in req. User-visible failures are also sent
// through the notifier.
func (o *Organizer) Run(ctx context.Context, req Request) (*Report, error) {
	cfg := o.Config()
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	o.run.Lock()
	defer o.run.Unlock()

	fail := func(err error) (*Report, error) {
		o.logger.Error("audiobook run failed", "args", req.Args, "error", err)
		o.notify(ctx, Message{Channel: req.Channel, User: req.User, Type: cfg.MsgType, Title: err.Error()})
		return nil, err
	}

	if cfg.LibraryID == "" {
		return fail(ErrNoLibrary)
	}

	book, idx, err := ParseArgs(req.Args)
	if err != nil {
		return fail(err)
	}
	log := o.logger.With("book", book)
	log.Info("organizing audiobook", "reference_episode", idx)

	books, err := o.lib.Items(ctx, cfg.LibraryID)
	if err != nil {
		return fail(fmt.Errorf("list library %s: %w", cfg.LibraryID, err))
	}
	if len(books) == 0 {
		return fail(fmt.Errorf("%w %s", ErrEmptyLibrary, cfg.LibraryID))
	}

	found, ok := findBook(books, book)
	if !ok {
		return fail(fmt.Errorf("%w: %s", ErrBookNotFound, book))
	}

	episodes, err := o.lib.Items(ctx, found.ID)
	if err != nil {
		return fail(fmt.Errorf("list episodes of %s: %w", found.Name, err))
	}
	if len(episodes) == 0 {
		return fail(fmt.Errorf("%w: %s", ErrNoEpisodes, found.Name))
	}
	if idx > len(episodes) {
		return fail(fmt.Errorf("%w: %d of %d", ErrEpisodeOutside, idx, len(episodes)))
	}

	ref := episodes[idx-1].AlbumFields
	log.Info("reference album",
		"album", ref.Album,
		"artists", ref.Artists,
		"album_artist", ref.AlbumArtist,
		"parent_index", ref.ParentIndexNumber)

	report := &Report{RunID: uuid.NewString(), Book: found.Name, BookID: found.ID}
	posted := false
	for i, ep := range episodes {
		n := i + 1
		if ref.SameAlbum(ep.AlbumFields) && !cfg.Rename {
			log.Debug("episode complete, skipping", "episode", n, "name", ep.Name)
			report.Skipped++
			continue
		}

		info, err := o.lib.ItemInfo(ctx, ep.ID)
		if err != nil {
			log.Error("fetch episode failed", "episode", n, "id", ep.ID, "error", err)
			report.Failed++
			continue
		}

		stem := info.FileStem()
		if cfg.Rename && ep.Name == stem {
			log.Debug("episode already named after its file, skipping", "episode", n, "name", ep.Name)
			report.Skipped++
			continue
		}

		if err := info.SetAlbum(ref, n); err != nil {
			log.Error("apply album failed", "episode", n, "error", err)
			report.Failed++
			continue
		}
		if info.Name() == placeholderName || cfg.Rename {
			info.SetName(stem)
		}

		if posted {
			if err := wait(ctx, cfg.Throttle); err != nil {
				return report, err
			}
		}
		posted = true

		if err := o.lib.UpdateItem(ctx, ep.ID, info); err != nil {
			log.Error("episode update failed", "episode", n, "name", info.Name(), "error", err)
			report.Failed++
			continue
		}
		log.Info("episode updated", "episode", n, "name", info.Name())
		report.Updated++
	}

	log.Info("audiobook organized",
		"run_id", report.RunID,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failed", report.Failed)

	if cfg.Notify {
		o.notify(ctx, Message{
			Channel: req.Channel,
			User:    req.User,
			Type:    cfg.MsgType,
			Title:   fmt.Sprintf("Audiobook %s organized", report.Book),
			Text:    fmt.Sprintf("updated %d, skipped %d, failed %d", report.Updated, report.Skipped, report.Failed),
		})
	}
	return report, nil
}

// findBook picks the first item whose name contains book, then falls back to
// a cleaned containment check and finally to fuzzy matching.
func findBook(items []emby.Item, book string) (emby.Item, bool) {
	for _, it := range items {
		if strings.Contains(it.Name, book) {
			return it, true
		}
	}
	for _, it := range items {
		if release.ContainsTitle(it.Name, book) {
			return it, true
		}
	}

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	if m := release.MatchTitle(book, names); m.Index >= 0 && m.Confidence >= release.ConfidenceMedium {
		return items[m.Index], true
	}
	return emby.Item{}, false
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
