// Package subscribe stores subscriptions and their download filter rules.
package subscribe

import (
	"time"

	"github.com/vmunix/mpplugins/pkg/release"
)

// Subscription is a standing request for a movie or a series season.
// Resolution, Quality and Effect hold canonical filter patterns from the
// release tag tables; Include is a group keyword filter.
type Subscription struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Type       release.MediaType `json:"type"`
	TMDBID     int64             `json:"tmdbid"`
	Season     *int              `json:"season,omitempty"`
	Resolution string            `json:"resolution,omitempty"`
	Quality    string            `json:"quality,omitempty"`
	Effect     string            `json:"effect,omitempty"`
	Include    string            `json:"include,omitempty"`
	Sites      []string          `json:"sites"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Fields is a partial update. Nil members are left unchanged.
type Fields struct {
	Resolution *string  `json:"resolution,omitempty"`
	Quality    *string  `json:"quality,omitempty"`
	Effect     *string  `json:"effect,omitempty"`
	Include    *string  `json:"include,omitempty"`
	Sites      []string `json:"sites,omitempty"` // nil = unchanged
}

// Empty reports whether no member is set.
func (f Fields) Empty() bool {
	return f.Resolution == nil && f.Quality == nil && f.Effect == nil && f.Include == nil && f.Sites == nil
}

// Filter specifies criteria for listing subscriptions.
type Filter struct {
	TMDBID *int64
	Season *int
	Type   *release.MediaType
}
