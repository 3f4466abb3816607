package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/vmunix/mpplugins/internal/audiobook"
	"github.com/vmunix/mpplugins/internal/events"
	"github.com/vmunix/mpplugins/internal/handlers"
)

func (s *Server) listPlugins(w http.ResponseWriter, _ *http.Request) {
	items := make([]handlers.PluginInfo, len(s.deps.Plugins))
	for i, p := range s.deps.Plugins {
		items[i] = p.Info()
	}
	writeJSON(w, http.StatusOK, listPluginsResponse{Items: items})
}

func (s *Server) commands() handlers.CommandTable {
	return handlers.Commands(s.deps.Plugins...)
}

func (s *Server) listCommands(w http.ResponseWriter, _ *http.Request) {
	items := s.commands()
	if items == nil {
		items = handlers.CommandTable{}
	}
	writeJSON(w, http.StatusOK, listCommandsResponse{Items: items})
}

// postCommand routes command text to the plugin that owns the command.
func (s *Server) postCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	pa, ok := s.commands().Parse(req.Text, req.Channel, req.User)
	if !ok {
		writeError(w, http.StatusNotFound, "UNKNOWN_COMMAND", "No plugin handles this command")
		return
	}
	if err := s.deps.Bus.Publish(r.Context(), pa); err != nil {
		writeError(w, http.StatusInternalServerError, "PUBLISH_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, acceptedResponse{Event: events.EventPluginAction, Action: pa.Action})
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	keys, err := s.deps.History.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Items: keys, Total: len(keys)})
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.History.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	s.logger.Info("subscribegroup history cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) runAudiobook(w http.ResponseWriter, r *http.Request) {
	var req audiobookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	report, err := s.deps.Audiobook.Run(r.Context(), audiobook.Request{
		Args:    req.Args,
		Channel: req.Channel,
		User:    req.User,
	})
	if err != nil {
		status, code := audiobookStatus(err)
		writeError(w, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func audiobookStatus(err error) (int, string) {
	switch {
	case errors.Is(err, audiobook.ErrUsage), errors.Is(err, audiobook.ErrEpisodeOutside):
		return http.StatusBadRequest, "INVALID_ARGS"
	case errors.Is(err, audiobook.ErrDisabled), errors.Is(err, audiobook.ErrNoLibrary):
		return http.StatusServiceUnavailable, "NOT_CONFIGURED"
	case errors.Is(err, audiobook.ErrEmptyLibrary),
		errors.Is(err, audiobook.ErrBookNotFound),
		errors.Is(err, audiobook.ErrNoEpisodes):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT"
	default:
		return http.StatusBadGateway, "EMBY_ERROR"
	}
}
