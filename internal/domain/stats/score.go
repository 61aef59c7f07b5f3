package stats

import (
	"strconv"
	"strings"
)

// Scoreline is a parsed full-time score.
type Scoreline struct {
	HomeGoals int `json:"homeGoals"`
	AwayGoals int `json:"awayGoals"`
}

// Schedule exports separate the two goal counts with an en-dash.
const scoreSeparator = "–"

// ParseScore parses a "2–1" style score string. A segment that is missing or
// does not parse as a non-negative integer counts as zero, so a malformed
// score degrades to a 0–0 (or partial) result instead of failing the row.
func ParseScore(raw string) Scoreline {
	sep := scoreSeparator
	if !strings.Contains(raw, sep) {
		sep = "-"
	}
	parts := strings.SplitN(raw, sep, 2)

	var s Scoreline
	s.HomeGoals = parseGoals(parts[0])
	if len(parts) > 1 {
		s.AwayGoals = parseGoals(parts[1])
	}
	return s
}

func parseGoals(segment string) int {
	n, err := strconv.Atoi(strings.TrimSpace(segment))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
