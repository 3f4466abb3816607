package release

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Rule maps a tag pattern to the canonical value stored when it matches.
//
// Every built-in rule uses its own pattern as the canonical value: the stored
// field is later read back by the subscription matcher as a filter regex, so
// the pattern strings are part of the storage format and must not change.
type Rule struct {
	Pattern   string
	Canonical string
}

// Table is an ordered list of rules. The first matching rule wins.
type Table struct {
	name  string
	rules []Rule
	res   []*regexp.Regexp
}

// NewTable compiles rules into a table. Patterns are matched
// case-insensitively anywhere in the tag.
func NewTable(name string, rules ...Rule) (*Table, error) {
	t := &Table{name: name, rules: rules, res: make([]*regexp.Regexp, len(rules))}
	for i, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, err
		}
		t.res[i] = re
	}
	return t, nil
}

// MustTable is like NewTable but panics on an invalid pattern.
func MustTable(name string, rules ...Rule) *Table {
	t, err := NewTable(name, rules...)
	if err != nil {
		panic("release: table " + name + ": " + err.Error())
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Rules returns a copy of the table's rules in match order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Normalize classifies raw against the table.
// Returns "" for an empty tag, the canonical value of the first matching
// rule, or raw unchanged when nothing matches.
func (t *Table) Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	// Full-width digits and letters are common in CJK release names.
	folded := width.Fold.String(raw)
	for i, re := range t.res {
		if re.MatchString(folded) {
			return t.rules[i].Canonical
		}
	}
	return raw
}

// Normalize classifies raw against table. See Table.Normalize.
func Normalize(raw string, table *Table) string {
	return table.Normalize(raw)
}

// Canonical patterns.
const (
	Pattern1080p = `1080[pi]|x1080`
	Pattern2160p = `4K|2160p|x2160`
	Pattern720p  = `720[pi]|x720`

	PatternBluRayDisc = `Blu-?Ray.+VC-?1|Blu-?Ray.+AVC|UHD.+blu-?ray.+HEVC|MiniBD`
	PatternRemux      = `Remux`
	PatternBluRay     = `Blu-?Ray`
	PatternUHD        = `UHD|UltraHD`
	PatternWEB        = `WEB-?DL|WEB-?RIP`
	PatternHDTV       = `HDTV`
	PatternH265       = `[Hx].?265|HEVC`
	PatternH264       = `[Hx].?264|AVC`

	PatternDolbyVision = `Dolby[\s.]+Vision|DOVI|[\s.]+DV[\s.]+`
	PatternAtmos       = `Dolby[\s.]*\+?Atmos|Atmos`
	PatternHDR         = `[\s.]+HDR[\s.]+|HDR10|HDR10\+`
	PatternSDR         = `[\s.]+SDR[\s.]+`
)

// ResolutionTable classifies resource_pix tags.
var ResolutionTable = MustTable("resolution",
	Rule{Pattern: Pattern1080p, Canonical: Pattern1080p},
	Rule{Pattern: Pattern2160p, Canonical: Pattern2160p},
	Rule{Pattern: Pattern720p, Canonical: Pattern720p},
)

// SourceTable classifies resource_type tags. Disc-family patterns precede the
// plain Blu-ray pattern so "BluRay AVC" resolves to the disc bucket.
var SourceTable = MustTable("source",
	Rule{Pattern: PatternBluRayDisc, Canonical: PatternBluRayDisc},
	Rule{Pattern: PatternRemux, Canonical: PatternRemux},
	Rule{Pattern: PatternBluRay, Canonical: PatternBluRay},
	Rule{Pattern: PatternUHD, Canonical: PatternUHD},
	Rule{Pattern: PatternWEB, Canonical: PatternWEB},
	Rule{Pattern: PatternHDTV, Canonical: PatternHDTV},
	Rule{Pattern: PatternH265, Canonical: PatternH265},
	Rule{Pattern: PatternH264, Canonical: PatternH264},
)

// EffectTable classifies resource_effect tags.
var EffectTable = MustTable("effect",
	Rule{Pattern: PatternDolbyVision, Canonical: PatternDolbyVision},
	Rule{Pattern: PatternAtmos, Canonical: PatternAtmos},
	Rule{Pattern: PatternHDR, Canonical: PatternHDR},
	Rule{Pattern: PatternSDR, Canonical: PatternSDR},
)

// Tables returns the built-in tables keyed by name.
func Tables() map[string]*Table {
	return map[string]*Table{
		ResolutionTable.Name(): ResolutionTable,
		SourceTable.Name():     SourceTable,
		EffectTable.Name():     EffectTable,
	}
}
