package enrich

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/vmunix/mpplugins/pkg/release"
)

// PluginID is the key/value namespace of the subscribegroup plugin.
const PluginID = "subscribegroup"

const historyKey = "history"

// ProcessedKey identifies a piece of content across downloads.
func ProcessedKey(t release.MediaType, tmdbID int64) string {
	return fmt.Sprintf("%s:%d", t, tmdbID)
}

// KV is the key/value persistence History is kept in.
type KV interface {
	Get(ctx context.Context, plugin, key string, dst any) (bool, error)
	Save(ctx context.Context, plugin, key string, value any) error
	Delete(ctx context.Context, plugin, key string) error
}

// History is the set of processed keys, stored as an ordered list.
// All methods serialize on one mutex, so Reserve is an atomic
// check-then-record within a process.
type History struct {
	mu sync.Mutex
	kv KV
}

// NewHistory creates a history backed by kv.
func NewHistory(kv KV) *History {
	return &History{kv: kv}
}

func (h *History) load(ctx context.Context) ([]string, error) {
	var keys []string
	if _, err := h.kv.Get(ctx, PluginID, historyKey, &keys); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return keys, nil
}

// List returns every processed key, oldest first.
func (h *History) List(ctx context.Context) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	keys, err := h.load(ctx)
	if keys == nil && err == nil {
		keys = []string{}
	}
	return keys, err
}

// Contains reports whether key has been processed.
func (h *History) Contains(ctx context.Context, key string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	keys, err := h.load(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(keys, key), nil
}

// Add records key. Adding a present key is a no-op.
func (h *History) Add(ctx context.Context, key string) error {
	_, err := h.Reserve(ctx, key)
	return err
}

// Reserve records key and reports true, or reports false when key was
// already present.
func (h *History) Reserve(ctx context.Context, key string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	keys, err := h.load(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(keys, key) {
		return false, nil
	}
	keys = append(keys, key)
	if err := h.kv.Save(ctx, PluginID, historyKey, keys); err != nil {
		return false, fmt.Errorf("save history: %w", err)
	}
	return true, nil
}

// Clear erases every processed key.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.kv.Delete(ctx, PluginID, historyKey); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
