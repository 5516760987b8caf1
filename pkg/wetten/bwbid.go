package wetten

import (
	"regexp"
	"strings"
)

// BWBPrefix is the fixed letter prefix of a Basiswettenbestand identifier.
const BWBPrefix = "BWBR"

var (
	bwbIDPattern     = regexp.MustCompile(`^BWBR\d+$`)
	bwbDigitsPattern = regexp.MustCompile(`^\d+$`)
	bwbScanPattern   = regexp.MustCompile(`BWBR\d+`)
)

// IsBWBID reports whether s is a syntactically complete BWB identifier
// (prefix plus digits).
func IsBWBID(s string) bool {
	return bwbIDPattern.MatchString(s)
}

// CanonicalBWBID normalizes an identifier to the prefixed form. A bare digit
// string gets the BWBR prefix prepended; an already-prefixed identifier is
// returned unchanged apart from whitespace trimming and upper-casing the
// prefix. Returns the canonical form and true, or the trimmed input and
// false when the input cannot be an identifier at all.
func CanonicalBWBID(s string) (string, bool) {
	candidate := strings.TrimSpace(s)

	if bwbDigitsPattern.MatchString(candidate) {
		return BWBPrefix + candidate, true
	}

	upper := strings.ToUpper(candidate)
	if bwbIDPattern.MatchString(upper) {
		return upper, true
	}

	return candidate, false
}

// ExtractBWBID returns the first BWB identifier appearing anywhere in text,
// or the empty string when none is present. Used to pull identifiers out of
// hrefs and raw markup.
func ExtractBWBID(text string) string {
	return bwbScanPattern.FindString(text)
}
