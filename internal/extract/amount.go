package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// MinCaseAmount is the floor below which a parsed dollar figure is not
// treated as the alleged case amount. Complaints quote filing fees and
// per-share prices; figures at or under this are noise.
const MinCaseAmount = 10_000

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseAmount parses a dollar-amount snippet such as "$4.5 million",
// "$1,700,000,000" or "250 million dollars" into an absolute value.
// Currency symbols and thousands separators are stripped; a billion
// magnitude word takes precedence over million. Returns false when the
// snippet contains no numeric literal.
func ParseAmount(text string) (float64, bool) {
	clean := strings.ReplaceAll(text, ",", "")
	clean = strings.ReplaceAll(clean, "$", "")

	m := numberPattern.FindString(clean)
	if m == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "billion"):
		value *= 1_000_000_000
	case strings.Contains(lower, "million"):
		value *= 1_000_000
	}

	return value, true
}

// MaxAmount returns the largest amount parsed from the snippets that
// exceeds MinCaseAmount. Returns false when no snippet qualifies.
func MaxAmount(snippets []string) (float64, bool) {
	var best float64
	found := false
	for _, s := range snippets {
		v, ok := ParseAmount(s)
		if !ok || v <= MinCaseAmount {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	return best, found
}
