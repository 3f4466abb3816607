// Package v1 implements the native REST API: host ingress for downloads
// and subscriptions, plugin commands and plugin state.
package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vmunix/mpplugins/internal/events"
)

const requestTimeout = 60 * time.Second

// Server is the v1 API server.
type Server struct {
	deps     ServerDeps
	registry *events.Registry
	logger   *slog.Logger
}

// New creates a new v1 API server.
func New(deps ServerDeps, logger *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDependency, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		deps:     deps,
		registry: events.DefaultRegistry(),
		logger:   logger.With("component", "api"),
	}, nil
}

// Router returns the HTTP handler serving every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/api/v1", s.RegisterRoutes)
	return r
}

// RegisterRoutes registers API routes on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/health", s.health)

	// Host ingress
	r.Get("/downloads", s.listDownloads)
	r.Post("/downloads", s.addDownload)
	r.Get("/downloads/{hash}", s.getDownload)
	r.Post("/downloads/{hash}/added", s.downloadAdded)

	r.Get("/subscriptions", s.listSubscriptions)
	r.Post("/subscriptions", s.addSubscription)
	r.Get("/subscriptions/{id}", s.getSubscription)

	// Plugins
	r.Get("/plugins", s.listPlugins)
	r.Get("/commands", s.listCommands)
	r.Post("/commands", s.postCommand)
	r.With(s.requireHistory).Get("/plugins/subscribegroup/history", s.listHistory)
	r.With(s.requireHistory).Delete("/plugins/subscribegroup/history", s.clearHistory)
	r.With(s.requireAudiobook).Post("/plugins/audiobook/run", s.runAudiobook)

	r.With(s.requireEventLog).Get("/events", s.listEvents)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Plugins: len(s.deps.Plugins)})
}
