package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeDaemon stands in for mpplugd. Routes are keyed by method and path
// (query excluded); any other request fails the test and gets a 404 in the
// daemon's {error, code} shape.
type fakeDaemon struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
}

func newFakeDaemon(t *testing.T) *fakeDaemon {
	t.Helper()
	return &fakeDaemon{
		t:      t,
		routes: make(map[string]http.HandlerFunc),
		hits:   make(map[string]int),
	}
}

func routeKey(method, path string) string { return method + " " + path }

// on registers h for method and path under /api/v1.
func (d *fakeDaemon) on(method, path string, h http.HandlerFunc) *fakeDaemon {
	d.routes[routeKey(method, "/api/v1"+path)] = h
	return d
}

// onJSON answers method and path with status and v encoded as JSON.
func (d *fakeDaemon) onJSON(method, path string, status int, v any) *fakeDaemon {
	return d.on(method, path, func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(d.t, w, status, v)
	})
}

// onError answers method and path with an API error body.
func (d *fakeDaemon) onError(method, path string, status int, msg, code string) *fakeDaemon {
	return d.on(method, path, func(w http.ResponseWriter, _ *http.Request) {
		respondAPIError(d.t, w, status, msg, code)
	})
}

// start serves the registered routes until the test ends.
func (d *fakeDaemon) start() *httptest.Server {
	d.t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r.Method, r.URL.Path)
		d.mu.Lock()
		h, ok := d.routes[key]
		d.hits[key]++
		d.mu.Unlock()
		if !ok {
			d.t.Errorf("unexpected request %s", key)
			respondAPIError(d.t, w, http.StatusNotFound, "no route for "+key, "NOT_FOUND")
			return
		}
		h(w, r)
	}))
	d.t.Cleanup(srv.Close)
	return srv
}

// client starts the daemon and returns a Client pointed at it.
func (d *fakeDaemon) client() *Client {
	return NewClient(d.start().URL)
}

// calls reports how many requests hit method and path under /api/v1.
func (d *fakeDaemon) calls(method, path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hits[routeKey(method, "/api/v1"+path)]
}

func respondJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func respondAPIError(t *testing.T, w http.ResponseWriter, status int, msg, code string) {
	t.Helper()
	respondJSON(t, w, status, apiError{Error: msg, Code: code})
}

// decodeRequest decodes the JSON request body into T.
func decodeRequest[T any](t *testing.T, r *http.Request) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	return v
}

// withServerURL points the --server flag at url for the test.
func withServerURL(t *testing.T, url string) {
	t.Helper()
	old := serverURL
	serverURL = url
	t.Cleanup(func() { serverURL = old })
}
