package enrich

import (
	"fmt"
	"strconv"
	"strings"
)

// SeasonFilter turns a download's season designator into the season used
// to match subscriptions. "S02" yields 2. Empty designators and ranges
// ("S01-S03") yield nil, meaning every season matches.
func SeasonFilter(seasons string) (*int, error) {
	s := strings.TrimSpace(seasons)
	if s == "" || strings.Contains(s, "-") {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(strings.ToUpper(s), "S", ""))
	if err != nil {
		return nil, fmt.Errorf("season designator %q: %w", seasons, err)
	}
	return &n, nil
}
