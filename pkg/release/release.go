// Package release parses release names and classifies their tags into the
// canonical filter patterns stored on subscriptions.
package release

import "strings"

// Meta contains the tags extracted from a release name.
// JSON names follow the host's meta_info payload.
type Meta struct {
	Title          string `json:"title,omitempty"`
	Year           int    `json:"year,omitempty"`
	Season         int    `json:"season,omitempty"`
	Episode        int    `json:"episode,omitempty"`
	ResourcePix    string `json:"resource_pix,omitempty"`    // 2160p, 1080p, 720p, 4K
	ResourceType   string `json:"resource_type,omitempty"`   // BluRay, WEB-DL, UHD BluRay, BluRay Remux
	ResourceEffect string `json:"resource_effect,omitempty"` // DV HDR Atmos
	ResourceTeam   string `json:"resource_team,omitempty"`   // release group
	VideoCodec     string `json:"video_encode,omitempty"`    // x265, H.264
}

// Empty reports whether no tag was extracted.
func (m *Meta) Empty() bool {
	if m == nil {
		return true
	}
	return strings.TrimSpace(m.ResourcePix+m.ResourceType+m.ResourceEffect+m.ResourceTeam) == ""
}

// MediaType is the kind of media a download or subscription refers to.
type MediaType string

const (
	MediaMovie  MediaType = "movie"
	MediaSeries MediaType = "series"
)

// Valid reports whether t is a known media type.
func (t MediaType) Valid() bool {
	return t == MediaMovie || t == MediaSeries
}
