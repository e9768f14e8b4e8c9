package util

import (
	"strconv"
	"strings"
)

// ParseLaptime converts a "M:SS.sss" timing string into seconds.
// The part left of the first colon is whole minutes, the rest is seconds.
// Returns false for anything that does not match (DNF markers, empty cells).
func ParseLaptime(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	minPart, secPart, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	minutes, err := strconv.ParseFloat(minPart, 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(secPart, 64)
	if err != nil {
		return 0, false
	}
	return minutes*60 + seconds, true
}

// ParseGap parses a signed-prefix gap string such as "+1.234".
// Only the "+" prefix counts as parseable. Anything else (missing prefix,
// negative, "DNF", laps-down markers) returns false.
func ParseGap(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "+") {
		return 0, false
	}
	gap, err := strconv.ParseFloat(s[1:], 64)
	if err != nil {
		return 0, false
	}
	return gap, true
}
