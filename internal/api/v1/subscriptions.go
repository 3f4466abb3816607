package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vmunix/mpplugins/internal/subscribe"
	"github.com/vmunix/mpplugins/pkg/release"
)

func (s *Server) addSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	sub := &subscribe.Subscription{
		Name:       req.Name,
		Type:       req.Type,
		TMDBID:     req.TMDBID,
		Season:     req.Season,
		Resolution: req.Resolution,
		Quality:    req.Quality,
		Effect:     req.Effect,
		Include:    req.Include,
		Sites:      req.Sites,
	}
	if err := s.deps.Subscriptions.Add(r.Context(), sub); err != nil {
		if errors.Is(err, subscribe.ErrInvalid) {
			writeError(w, http.StatusBadRequest, "INVALID_SUBSCRIPTION", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) getSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	sub, err := s.deps.Subscriptions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, subscribe.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Subscription not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	var filter subscribe.Filter
	q := r.URL.Query()
	if v := q.Get("tmdbid"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_TMDBID", "tmdbid must be an integer")
			return
		}
		filter.TMDBID = &id
	}
	if v := q.Get("season"); v != "" {
		season, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_SEASON", "season must be an integer")
			return
		}
		filter.Season = &season
	}
	if v := q.Get("type"); v != "" {
		t := release.MediaType(v)
		filter.Type = &t
	}

	items, err := s.deps.Subscriptions.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if items == nil {
		items = []*subscribe.Subscription{}
	}
	writeJSON(w, http.StatusOK, listSubscriptionsResponse{Items: items, Total: len(items)})
}
