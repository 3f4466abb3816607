package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vmunix/mpplugins/internal/download"
	"github.com/vmunix/mpplugins/internal/events"
	"github.com/vmunix/mpplugins/pkg/release"
)

func (s *Server) addDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	rec := &download.Record{
		Hash:        req.Hash,
		Type:        req.Type,
		TMDBID:      req.TMDBID,
		Seasons:     req.Seasons,
		Episodes:    req.Episodes,
		Title:       req.Title,
		TorrentSite: req.TorrentSite,
	}
	if err := s.deps.Downloads.Add(r.Context(), rec); err != nil {
		switch {
		case errors.Is(err, download.ErrInvalid):
			writeError(w, http.StatusBadRequest, "INVALID_DOWNLOAD", err.Error())
		case errors.Is(err, download.ErrDuplicate):
			writeError(w, http.StatusConflict, "DUPLICATE", "Download already recorded")
		default:
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) getDownload(w http.ResponseWriter, r *http.Request) {
	rec, err := s.deps.Downloads.GetByHash(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		if errors.Is(err, download.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Download not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) listDownloads(w http.ResponseWriter, r *http.Request) {
	filter := download.Filter{Limit: queryInt(r, "limit", 50)}
	if v := r.URL.Query().Get("tmdbid"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_TMDBID", "tmdbid must be an integer")
			return
		}
		filter.TMDBID = &id
	}
	if v := r.URL.Query().Get("type"); v != "" {
		t := release.MediaType(v)
		filter.Type = &t
	}

	items, err := s.deps.Downloads.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if items == nil {
		items = []*download.Record{}
	}
	writeJSON(w, http.StatusOK, listDownloadsResponse{Items: items, Total: len(items)})
}

// downloadAdded publishes DownloadAdded for a recorded download. The body is
// the optional download context (torrent_info, meta_info).
func (s *Server) downloadAdded(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	var dctx events.DownloadContext
	if err := decodeJSON(r, &dctx); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	e := &events.DownloadAdded{
		BaseEvent: events.NewBaseEvent(events.EventDownloadAdded, events.EntityDownload, 0),
		Hash:      hash,
		Context:   &dctx,
	}
	if rec, err := s.deps.Downloads.GetByHash(r.Context(), hash); err == nil {
		e.ID = rec.ID
	}
	if err := s.deps.Bus.Publish(r.Context(), e); err != nil {
		writeError(w, http.StatusInternalServerError, "PUBLISH_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, acceptedResponse{Event: events.EventDownloadAdded, Hash: hash})
}
