package events

import "github.com/vmunix/mpplugins/pkg/release"

// Event type constants
const (
	EventDownloadAdded        = "download.added"
	EventPluginAction         = "plugin.action"
	EventMessagePosted        = "message.posted"
	EventSubscriptionEnriched = "subscription.enriched"
	EventEnrichmentSkipped    = "enrichment.skipped"
	EventAudiobookOrganized   = "audiobook.organized"
)

// TorrentInfo is the torrent side of a download context.
type TorrentInfo struct {
	Site  string `json:"site,omitempty"`
	Title string `json:"title,omitempty"`
}

// DownloadContext is what the host knew about a release when it was sent to
// the download client. Either part may be missing.
type DownloadContext struct {
	TorrentInfo *TorrentInfo  `json:"torrent_info,omitempty"`
	MetaInfo    *release.Meta `json:"meta_info,omitempty"`
}

// Site returns the torrent site or "".
func (c *DownloadContext) Site() string {
	if c == nil || c.TorrentInfo == nil {
		return ""
	}
	return c.TorrentInfo.Site
}

// Meta returns the parsed release tags, nil when absent.
func (c *DownloadContext) Meta() *release.Meta {
	if c == nil {
		return nil
	}
	return c.MetaInfo
}

// DownloadAdded is emitted when the host hands a torrent to a download client.
type DownloadAdded struct {
	BaseEvent
	Hash    string           `json:"hash"`
	Context *DownloadContext `json:"context,omitempty"`
}

// PluginAction is emitted for a chat/API command routed to a plugin.
type PluginAction struct {
	BaseEvent
	Action  string `json:"action"`
	Args    string `json:"args,omitempty"`
	Channel string `json:"channel,omitempty"`
	User    string `json:"user,omitempty"`
}

// MessagePosted is a user-facing message a plugin wants delivered.
type MessagePosted struct {
	BaseEvent
	Channel string `json:"channel,omitempty"`
	User    string `json:"user,omitempty"`
	Type    string `json:"msg_type,omitempty"`
	Title   string `json:"title"`
	Text    string `json:"text,omitempty"`
}

// SubscriptionEnriched is emitted after rules were filled on a subscription.
type SubscriptionEnriched struct {
	BaseEvent
	SubscriptionID int64    `json:"subscription_id"`
	Key            string   `json:"key"`
	Include        *string  `json:"include,omitempty"`
	Sites          []string `json:"sites,omitempty"`
	Resolution     *string  `json:"resolution,omitempty"`
	Quality        *string  `json:"quality,omitempty"`
	Effect         *string  `json:"effect,omitempty"`
}

// EnrichmentSkipped is emitted when a download did not lead to enrichment.
type EnrichmentSkipped struct {
	BaseEvent
	Hash    string `json:"hash"`
	Key     string `json:"key,omitempty"`
	Outcome string `json:"outcome"` // "skipped" or "rejected"
	Reason  string `json:"reason"`
}

// AudiobookOrganized summarizes one /ab run.
type AudiobookOrganized struct {
	BaseEvent
	RunID   string `json:"run_id"`
	Book    string `json:"book"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}
