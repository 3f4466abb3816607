package release

import (
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts volume/sequence numbers from titles.
var numberRegex = regexp.MustCompile(`\d+`)

// MatchConfidence represents the confidence level of a title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult is the best candidate for a fuzzy title match.
type MatchResult struct {
	Index      int     // index into candidates, -1 when nothing matched
	Title      string  // matched candidate as given
	Score      float64 // Jaro-Winkler similarity (0.0-1.0)
	Confidence MatchConfidence
}

// ContainsTitle reports whether candidate contains query after cleaning both.
func ContainsTitle(candidate, query string) bool {
	q := CleanTitle(query)
	if q == "" {
		return false
	}
	return strings.Contains(CleanTitle(candidate), q)
}

// MatchTitle finds the candidate most similar to query.
// Jaro-Winkler favours shared prefixes, which suits series and book names;
// sequence numbers that agree earn a bonus and disagreeing ones a penalty.
func MatchTitle(query string, candidates []string) MatchResult {
	best := MatchResult{Index: -1}
	cleanQuery := CleanTitle(query)
	if cleanQuery == "" {
		return best
	}
	queryNumbers := numberRegex.FindAllString(cleanQuery, -1)

	for i, candidate := range candidates {
		cleanCandidate := CleanTitle(candidate)
		score := float64(edlib.JaroWinklerSimilarity(cleanQuery, cleanCandidate))
		score = adjustScoreForNumbers(score, queryNumbers, numberRegex.FindAllString(cleanCandidate, -1))
		if score > best.Score {
			best = MatchResult{Index: i, Title: candidate, Score: score}
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best = MatchResult{Index: -1, Score: best.Score}
	}
	return best
}

// adjustScoreForNumbers rewards candidates sharing a number with the query
// and penalizes candidates whose numbers differ or are missing.
func adjustScoreForNumbers(score float64, queryNums, candidateNums []string) float64 {
	if len(queryNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}
	for _, q := range queryNums {
		for _, c := range candidateNums {
			if q == c {
				return min(score*1.05, 1.0)
			}
		}
	}
	return score * 0.90
}
