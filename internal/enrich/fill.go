package enrich

import (
	"github.com/vmunix/mpplugins/internal/subscribe"
	"github.com/vmunix/mpplugins/pkg/release"
)

// Fill computes the fields enrichment would write to sub. Only fields that
// are selected in targets and still empty on sub are considered; tags are
// normalized through the release tables. Include and Sites are filled as a
// pair and only when both are empty. A nil meta yields no tag fields.
func Fill(sub *subscribe.Subscription, meta *release.Meta, site string, targets Targets) subscribe.Fields {
	var f subscribe.Fields

	if meta != nil {
		if targets.ResourcePix && sub.Resolution == "" {
			f.Resolution = nonEmpty(release.ResolutionTable.Normalize(meta.ResourcePix))
		}
		if targets.ResourceType && sub.Quality == "" {
			f.Quality = nonEmpty(release.SourceTable.Normalize(meta.ResourceType))
		}
		if targets.ResourceEffect && sub.Effect == "" {
			f.Effect = nonEmpty(release.EffectTable.Normalize(meta.ResourceEffect))
		}
	}

	if targets.Group && sub.Include == "" && len(sub.Sites) == 0 {
		if meta != nil {
			f.Include = nonEmpty(meta.ResourceTeam)
		}
		if site != "" {
			f.Sites = []string{site}
		}
	}

	return f
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
