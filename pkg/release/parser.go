package release

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	extRe      = regexp.MustCompile(`(?i)\.(mkv|mp4|avi|ts|m2ts|torrent)$`)
	pixRe      = regexp.MustCompile(`(?i)\b(4K|2160p|1080[pi]|720p|480p)\b`)
	seasonEpRe = regexp.MustCompile(`(?i)\bS(\d{1,2})E(\d{1,3})\b`)
	seasonRe   = regexp.MustCompile(`(?i)\bS(\d{1,2})\b`)
	yearRe     = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	teamRe     = regexp.MustCompile(`[-@]([A-Za-z0-9&]+)$`)
	codecRe    = regexp.MustCompile(`(?i)\b([xh]\.?26[45]|HEVC|AVC)\b`)
)

// sourceTokens are checked in order; the first hit names the source.
var sourceTokens = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`(?i)\bUHD\b.*\bBlu-?Ray\b`), "UHD BluRay"},
	{regexp.MustCompile(`(?i)\bBlu-?Ray\b`), "BluRay"},
	{regexp.MustCompile(`(?i)\bWEB-?DL\b`), "WEB-DL"},
	{regexp.MustCompile(`(?i)\bWEB-?Rip\b`), "WEBRip"},
	{regexp.MustCompile(`(?i)\bHDTV\b`), "HDTV"},
	{regexp.MustCompile(`(?i)\bDVD(Rip)?\b`), "DVDRip"},
}

// tagFragments are hyphenated tag tails that look like a trailing group.
var tagFragments = map[string]bool{"dl": true, "rip": true, "ray": true}

var remuxRe = regexp.MustCompile(`(?i)\bRemux\b`)

// effectTokens are collected in this order into ResourceEffect.
var effectTokens = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`(?i)\b(DV|DoVi|Dolby[ .]?Vision)\b`), "DV"},
	{regexp.MustCompile(`(?i)\bHDR10\+`), "HDR10+"},
	{regexp.MustCompile(`(?i)\bHDR10\b`), "HDR10"},
	{regexp.MustCompile(`(?i)\bHDR\b`), "HDR"},
	{regexp.MustCompile(`(?i)\bSDR\b`), "SDR"},
	{regexp.MustCompile(`(?i)\bAtmos\b`), "Atmos"},
}

// Parse extracts tags from a release name.
func Parse(name string) *Meta {
	m := &Meta{}
	name = strings.TrimSpace(extRe.ReplaceAllString(strings.TrimSpace(name), ""))
	if name == "" {
		return m
	}

	titleEnd := len(name)
	markEnd := func(idx []int) {
		if idx != nil && idx[0] > 0 && idx[0] < titleEnd {
			titleEnd = idx[0]
		}
	}

	if loc := seasonEpRe.FindStringSubmatchIndex(name); loc != nil {
		m.Season, _ = strconv.Atoi(name[loc[2]:loc[3]])
		m.Episode, _ = strconv.Atoi(name[loc[4]:loc[5]])
		markEnd(loc)
	} else if loc := seasonRe.FindStringSubmatchIndex(name); loc != nil {
		m.Season, _ = strconv.Atoi(name[loc[2]:loc[3]])
		markEnd(loc)
	}

	if loc := yearRe.FindStringIndex(name); loc != nil && loc[0] > 0 {
		m.Year, _ = strconv.Atoi(name[loc[0]:loc[1]])
		markEnd(loc)
	}

	if loc := pixRe.FindStringIndex(name); loc != nil {
		pix := name[loc[0]:loc[1]]
		if strings.EqualFold(pix, "4k") {
			m.ResourcePix = "4K"
		} else {
			m.ResourcePix = strings.ToLower(pix)
		}
		markEnd(loc)
	}

	for _, tok := range sourceTokens {
		if loc := tok.re.FindStringIndex(name); loc != nil {
			m.ResourceType = tok.name
			markEnd(loc)
			break
		}
	}
	if loc := remuxRe.FindStringIndex(name); loc != nil {
		m.ResourceType = strings.TrimSpace(m.ResourceType + " Remux")
		markEnd(loc)
	}

	var effects []string
	for _, tok := range effectTokens {
		if tok.name == "HDR" && containsString(effects, "HDR10", "HDR10+") {
			continue
		}
		if tok.name == "HDR10" && containsString(effects, "HDR10+") {
			continue
		}
		if tok.re.MatchString(name) {
			effects = append(effects, tok.name)
		}
	}
	m.ResourceEffect = strings.Join(effects, " ")

	if match := codecRe.FindString(name); match != "" {
		m.VideoCodec = match
	}

	if match := teamRe.FindStringSubmatch(name); match != nil && !tagFragments[strings.ToLower(match[1])] {
		m.ResourceTeam = match[1]
	}

	m.Title = cleanDisplayTitle(name[:titleEnd])
	return m
}

func cleanDisplayTitle(s string) string {
	s = strings.NewReplacer(".", " ", "_", " ", "[", " ", "]", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func containsString(list []string, values ...string) bool {
	for _, l := range list {
		for _, v := range values {
			if l == v {
				return true
			}
		}
	}
	return false
}
