package wetten

import (
	"fmt"
	"regexp"
	"strings"
)

// dutchMonths maps lowercase Dutch month names to their two-digit numbers.
var dutchMonths = map[string]string{
	"januari":   "01",
	"februari":  "02",
	"maart":     "03",
	"april":     "04",
	"mei":       "05",
	"juni":      "06",
	"juli":      "07",
	"augustus":  "08",
	"september": "09",
	"oktober":   "10",
	"november":  "11",
	"december":  "12",
}

var (
	dateDutchPattern = regexp.MustCompile(`(\d{1,2})\s+([a-zA-Z]+)\s+(\d{4})`)
	dateDMYPattern   = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`)
	dateISOPattern   = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
)

// ParseDutchDate extracts a calendar date from free text and normalizes it
// to ISO form (YYYY-MM-DD). Three literal formats are tried in order, first
// successful parse wins:
//
//  1. "24 maart 1815"  (day, Dutch month name, year)
//  2. "24-03-1815"     (DD-MM-YYYY)
//  3. "1815-03-24"     (YYYY-MM-DD)
//
// Returns the ISO date and true, or "" and false when no format matches.
func ParseDutchDate(text string) (string, bool) {
	if match := dateDutchPattern.FindStringSubmatch(text); match != nil {
		day := match[1]
		if len(day) == 1 {
			day = "0" + day
		}
		if month, known := dutchMonths[strings.ToLower(match[2])]; known {
			return fmt.Sprintf("%s-%s-%s", match[3], month, day), true
		}
	}

	if match := dateDMYPattern.FindStringSubmatch(text); match != nil {
		return fmt.Sprintf("%s-%s-%s", match[3], match[2], match[1]), true
	}

	if match := dateISOPattern.FindStringSubmatch(text); match != nil {
		return fmt.Sprintf("%s-%s-%s", match[1], match[2], match[3]), true
	}

	return "", false
}

// resolveEntryDate runs the full fallback chain for the entry-into-force
// date: literal parse of the page text, then the known-law table, then the
// UnknownDate sentinel. Never fails.
func resolveEntryDate(text string, bwbID string) string {
	if isoDate, parsed := ParseDutchDate(text); parsed {
		return isoDate
	}

	if known, exists := LookupKnownLaw(bwbID); exists {
		return known.EntryIntoForce
	}

	return UnknownDate
}
