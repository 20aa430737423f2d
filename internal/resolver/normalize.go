package resolver

import "strings"

// suffixes dropped from the end of a raw feed name before comparison
var nameSuffixes = map[string]struct{}{
	"jr":  {},
	"jr.": {},
	"sr":  {},
	"sr.": {},
	"ii":  {},
	"iii": {},
	"iv":  {},
	"v":   {},
}

// NormalizeName reduces a raw player name to its canonical lookup key:
// generational suffixes stripped, a short middle initial collapsed, and the
// result lower-cased. "Odell Beckham Jr." and "odell beckham" share a key.
func NormalizeName(raw string) string {
	parts := strings.Fields(strings.ToLower(raw))

	for len(parts) > 1 {
		last := parts[len(parts)-1]
		if _, ok := nameSuffixes[last]; !ok {
			break
		}
		parts = parts[:len(parts)-1]
	}

	// "Michael D. Vick" and "Michael Vick" are the same player to the feeds
	if len(parts) == 3 && len(strings.TrimSuffix(parts[1], ".")) <= 2 {
		parts = []string{parts[0], parts[2]}
	}

	return strings.Join(parts, " ")
}
