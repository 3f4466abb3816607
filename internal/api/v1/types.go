package v1

import (
	"github.com/vmunix/mpplugins/internal/download"
	"github.com/vmunix/mpplugins/internal/handlers"
	"github.com/vmunix/mpplugins/internal/subscribe"
	"github.com/vmunix/mpplugins/pkg/release"
)

type healthResponse struct {
	Status  string `json:"status"`
	Plugins int    `json:"plugins"`
}

// downloadRequest is the body of POST /downloads.
type downloadRequest struct {
	Hash        string            `json:"hash"`
	Type        release.MediaType `json:"type"`
	TMDBID      int64             `json:"tmdbid"`
	Seasons     string            `json:"seasons,omitempty"`
	Episodes    string            `json:"episodes,omitempty"`
	Title       string            `json:"title"`
	TorrentSite string            `json:"torrent_site,omitempty"`
}

type listDownloadsResponse struct {
	Items []*download.Record `json:"items"`
	Total int                `json:"total"`
}

// subscriptionRequest is the body of POST /subscriptions.
type subscriptionRequest struct {
	Name       string            `json:"name"`
	Type       release.MediaType `json:"type"`
	TMDBID     int64             `json:"tmdbid"`
	Season     *int              `json:"season,omitempty"`
	Resolution string            `json:"resolution,omitempty"`
	Quality    string            `json:"quality,omitempty"`
	Effect     string            `json:"effect,omitempty"`
	Include    string            `json:"include,omitempty"`
	Sites      []string          `json:"sites,omitempty"`
}

type listSubscriptionsResponse struct {
	Items []*subscribe.Subscription `json:"items"`
	Total int                       `json:"total"`
}

// acceptedResponse acknowledges an event published for asynchronous work.
type acceptedResponse struct {
	Event  string `json:"event"`
	Hash   string `json:"hash,omitempty"`
	Action string `json:"action,omitempty"`
}

type listPluginsResponse struct {
	Items []handlers.PluginInfo `json:"items"`
}

type listCommandsResponse struct {
	Items []handlers.Command `json:"items"`
}

// commandRequest is the body of POST /commands.
type commandRequest struct {
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
	User    string `json:"user,omitempty"`
}

type historyResponse struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

// audiobookRequest is the body of POST /plugins/audiobook/run.
type audiobookRequest struct {
	Args    string `json:"args"`
	Channel string `json:"channel,omitempty"`
	User    string `json:"user,omitempty"`
}

// EventResponse is one entry of the event log.
type EventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	Payload    string `json:"payload,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type listEventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
	Limit int             `json:"limit"`
}
