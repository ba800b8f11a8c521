package extract

import "strings"

type jurisdictionEntry struct {
	name string
	code string
}

// jurisdictionTable maps jurisdiction phrases to canonical codes.
// Entries are ordered: longer phrases come before their substrings
// ("cayman islands" before "cayman") and lookup is substring
// containment over the lowercased input.
var jurisdictionTable = []jurisdictionEntry{
	{"delaware", "us_de"},
	{"nevada", "us_nv"},
	{"wyoming", "us_wy"},
	{"california", "us_ca"},
	{"new york", "us_ny"},
	{"texas", "us_tx"},
	{"florida", "us_fl"},
	{"british virgin islands", "vg"},
	{"bvi", "vg"},
	{"cayman islands", "ky"},
	{"cayman", "ky"},
	{"panama", "pa"},
	{"singapore", "sg"},
	{"hong kong", "hk"},
	{"united kingdom", "gb"},
	{"england", "gb"},
}

// NormalizeJurisdiction maps a free-text jurisdiction phrase to a
// canonical code. Unknown jurisdictions fall back to the first five
// lowercase characters (the whole string when shorter), so the result
// is never empty for non-empty input.
func NormalizeJurisdiction(jur string) string {
	lower := strings.ToLower(strings.TrimSpace(jur))

	for _, e := range jurisdictionTable {
		if strings.Contains(lower, e.name) {
			return e.code
		}
	}

	if len(lower) > 5 {
		return lower[:5]
	}
	return lower
}
