package pipeline

import (
	"strconv"
	"strings"
)

// DefaultAccuracyScore is assumed when a review response carries no
// recognizable score line.
const DefaultAccuracyScore = 75.0

// ParseScore extracts the accuracy score from a review response. It
// scans for the first line mentioning "accuracy score" or "score:" and
// takes the first whitespace-delimited numeric token on that line.
// Anything unparseable yields the default of 75.0.
func ParseScore(review string) float64 {
	for _, line := range strings.Split(review, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "accuracy score") && !strings.Contains(lower, "score:") {
			continue
		}
		for _, token := range strings.Fields(line) {
			if !isNumericToken(token) {
				continue
			}
			if score, err := strconv.ParseFloat(strings.TrimSuffix(token, "."), 64); err == nil {
				return score
			}
		}
		return DefaultAccuracyScore
	}
	return DefaultAccuracyScore
}

// isNumericToken reports whether the token is all digits once dots are
// removed, e.g. "92", "42.5" or "85.".
func isNumericToken(token string) bool {
	stripped := strings.ReplaceAll(token, ".", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
