// Package enrich fills missing subscription rules from the first download of
// a series.
//
// When a download is added, the release tags the host parsed for it
// (resolution, source, effect, group) are normalized to canonical filter
// patterns and written to every matching subscription field that is still
// empty. Each series is processed once; the processed keys live in a History
// until it is cleared.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/vmunix/mpplugins/internal/download"
	"github.com/vmunix/mpplugins/internal/events"
	"github.com/vmunix/mpplugins/internal/subscribe"
	"github.com/vmunix/mpplugins/pkg/release"
)

//go:generate mockgen -destination=mocks/mock_enrich.go -package=mocks . Downloads,Subscriptions

// Downloads resolves download history records.
type Downloads interface {
	GetByHash(ctx context.Context, hash string) (*download.Record, error)
}

// Subscriptions lists and updates subscriptions.
type Subscriptions interface {
	ListByTMDBID(ctx context.Context, tmdbID int64, season *int) ([]*subscribe.Subscription, error)
	Update(ctx context.Context, id int64, f subscribe.Fields) error
}

// Config is the plugin configuration.
type Config struct {
	Enabled       bool
	Clear         bool
	UpdateDetails []string
}

// Request is one download event.
type Request struct {
	Hash    string
	Context *events.DownloadContext
}

// Outcome is the terminal state of a Process call.
type Outcome int

const (
	Rejected Outcome = iota
	Skipped
	Applied
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Skipped:
		return "skipped"
	default:
		return "rejected"
	}
}

// Update is the enrichment of one subscription.
type Update struct {
	SubscriptionID int64
	Name           string
	Fields         subscribe.Fields
	Err            error // persistence failure, the batch continued
}

// Result reports what Process did.
type Result struct {
	Outcome Outcome
	Key     string   // processed key, empty when rejected before lookup
	Updates []Update // subscriptions written (or attempted)
	Err     error    // set for Rejected
}

// Enricher applies release tags to subscriptions.
type Enricher struct {
	downloads Downloads
	subs      Subscriptions
	history   *History
	logger    *slog.Logger

	mu      sync.RWMutex
	cfg     Config
	targets Targets
}

// New creates an Enricher. Call Configure before Process.
func New(downloads Downloads, subs Subscriptions, history *History, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{
		downloads: downloads,
		subs:      subs,
		history:   history,
		logger:    logger.With("component", "enrich"),
	}
}

// History returns the processed-key history.
func (e *Enricher) History() *History { return e.history }

// Configure applies cfg. When cfg.Clear is set the history is erased and
// Configure reports true so the caller can persist clear=false.
func (e *Enricher) Configure(ctx context.Context, cfg Config) (cleared bool, err error) {
	targets, err := ParseTargets(cfg.UpdateDetails)
	if err != nil {
		return false, err
	}

	e.mu.Lock()
	e.cfg = cfg
	e.cfg.Clear = false
	e.targets = targets
	e.mu.Unlock()

	if !cfg.Clear {
		return false, nil
	}
	if err := e.history.Clear(ctx); err != nil {
		return false, err
	}
	e.logger.Info("history cleared")
	return true, nil
}

// Config returns the active configuration.
func (e *Enricher) Config() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

func (e *Enricher) snapshot() (Config, Targets) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg, e.targets
}

func reject(key string, err error) Result {
	return Result{Outcome: Rejected, Key: key, Err: err}
}

// Process handles one download event.
func (e *Enricher) Process(ctx context.Context, req Request) Result {
	cfg, targets := e.snapshot()
	if !cfg.Enabled {
		return reject("", ErrDisabled)
	}
	if targets.Empty() {
		e.logger.Warn("no enrichment targets configured")
		return reject("", ErrNoTargets)
	}
	if strings.TrimSpace(req.Hash) == "" || req.Context == nil {
		return reject("", ErrInvalidEvent)
	}

	rec, err := e.downloads.GetByHash(ctx, req.Hash)
	if err != nil {
		if errors.Is(err, download.ErrNotFound) {
			e.logger.Warn("download history not found", "hash", req.Hash)
			return reject("", fmt.Errorf("%w: %s", ErrDownloadNotFound, req.Hash))
		}
		e.logger.Error("download history lookup failed", "hash", req.Hash, "error", err)
		return reject("", err)
	}

	key := ProcessedKey(rec.Type, rec.TMDBID)
	log := e.logger.With("title", rec.Title, "key", key)

	if rec.Type != release.MediaSeries {
		log.Warn("download is not a series, skipping group fill")
		return reject(key, ErrNotSeries)
	}

	reserved, err := e.history.Reserve(ctx, key)
	if err != nil {
		log.Error("history update failed", "error", err)
		return reject(key, err)
	}
	if !reserved {
		log.Warn("download already processed")
		return Result{Outcome: Skipped, Key: key}
	}

	season, err := SeasonFilter(rec.Seasons)
	if err != nil {
		log.Warn("ignoring season designator", "seasons", rec.Seasons, "error", err)
	}

	subs, err := e.subs.ListByTMDBID(ctx, rec.TMDBID, season)
	if err != nil {
		log.Error("list subscriptions failed", "error", err)
		return reject(key, err)
	}
	if len(subs) == 0 {
		log.Warn("no subscriptions for download", "tmdbid", rec.TMDBID, "season", season)
		return reject(key, ErrNoSubscriptions)
	}

	meta := req.Context.Meta()
	site := req.Context.Site()
	res := Result{Outcome: Applied, Key: key}

	for _, sub := range subs {
		// A mismatch stops the whole batch; earlier updates stay applied.
		if sub.Type != release.MediaSeries {
			log.Warn("subscription is not a series", "subscription", sub.ID, "type", sub.Type)
			res.Outcome = Rejected
			res.Err = fmt.Errorf("%w: subscription %d", ErrTypeMismatch, sub.ID)
			return res
		}

		fields := Fill(sub, meta, site, targets)
		if fields.Empty() {
			log.Warn("subscription already configured, nothing to fill", "subscription", sub.ID, "name", sub.Name)
			continue
		}

		u := Update{SubscriptionID: sub.ID, Name: sub.Name, Fields: fields}
		if err := e.subs.Update(ctx, sub.ID, fields); err != nil {
			log.Error("subscription update failed", "subscription", sub.ID, "error", err)
			u.Err = err
		} else {
			log.Info("subscription enriched",
				"subscription", sub.ID,
				"name", sub.Name,
				"resolution", deref(fields.Resolution),
				"quality", deref(fields.Quality),
				"effect", deref(fields.Effect),
				"include", deref(fields.Include),
				"sites", fields.Sites)
		}
		res.Updates = append(res.Updates, u)
	}

	return res
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
