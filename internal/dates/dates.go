// Package dates parses the heterogeneous date and duration strings found on
// resumes into one canonical display form.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthAbbr = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var (
	presentRe   = regexp.MustCompile(`(?i)present|current|now|ongoing|today`)
	monthYearRe = regexp.MustCompile(`^([A-Za-z]+)\s*[,.]?\s*(\d{4})$`)
	mmYYYYRe    = regexp.MustCompile(`^(\d{1,2})[/-](\d{4})$`)
	yyyyMMRe    = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})$`)
	yearOnlyRe  = regexp.MustCompile(`^(\d{4})$`)
	fullDateRe  = regexp.MustCompile(`^([A-Za-z]+)\s+\d{1,2}[,.]?\s*(\d{4})$`)
)

// ParsedDate is an immutable parsed date. IsPresent marks the "still
// ongoing" keywords and carries no year or month; otherwise Year is always
// set and Month (0-11) is valid only when HasMonth.
type ParsedDate struct {
	Year      int
	Month     int
	HasMonth  bool
	IsPresent bool
}

// Display returns "Present", "{AbbrMonth} {Year}", or "{Year}".
func (d ParsedDate) Display() string {
	if d.IsPresent {
		return "Present"
	}
	if d.HasMonth {
		return fmt.Sprintf("%s %d", monthAbbr[d.Month], d.Year)
	}
	return strconv.Itoa(d.Year)
}

// monthIndex resolves a month word to its 0-based index: case-insensitive
// prefix match against full names first, then exact match against the
// three-letter abbreviations. Returns -1 when unrecognized.
func monthIndex(word string) int {
	word = strings.ToLower(word)
	for i, name := range monthNames {
		if strings.HasPrefix(strings.ToLower(name), word) {
			return i
		}
	}
	for i, abbr := range monthAbbr {
		if strings.ToLower(abbr) == word {
			return i
		}
	}
	return -1
}

// Parse recognizes, in priority order: presence keywords, "Month Year",
// "MM/YYYY", "YYYY-MM", bare "YYYY", and "Month D, YYYY" (day ignored). It
// returns nil when no year can be recovered; that is the deliberate
// "unparseable" signal, not an error.
func Parse(input string) *ParsedDate {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	if presentRe.MatchString(input) {
		return &ParsedDate{IsPresent: true}
	}

	month, year := -1, 0

	if m := monthYearRe.FindStringSubmatch(input); m != nil {
		month = monthIndex(m[1])
		year, _ = strconv.Atoi(m[2])
	}
	if year == 0 {
		if m := mmYYYYRe.FindStringSubmatch(input); m != nil {
			n, _ := strconv.Atoi(m[1])
			month = n - 1
			year, _ = strconv.Atoi(m[2])
		}
	}
	if year == 0 {
		if m := yyyyMMRe.FindStringSubmatch(input); m != nil {
			year, _ = strconv.Atoi(m[1])
			n, _ := strconv.Atoi(m[2])
			month = n - 1
		}
	}
	if year == 0 {
		if m := yearOnlyRe.FindStringSubmatch(input); m != nil {
			year, _ = strconv.Atoi(m[1])
		}
	}
	if year == 0 {
		if m := fullDateRe.FindStringSubmatch(input); m != nil {
			month = monthIndex(m[1])
			year, _ = strconv.Atoi(m[2])
		}
	}

	if year == 0 {
		return nil
	}

	// A month outside [0,11] after parsing is discarded, keeping year-only.
	if month < 0 || month > 11 {
		return &ParsedDate{Year: year}
	}
	return &ParsedDate{Year: year, Month: month, HasMonth: true}
}

// FormatDateRange renders a start/end pair as a single duration string.
// Same-year ranges with known months abbreviate to "Jan – Mar 2020".
func FormatDateRange(startStr, endStr string) string {
	start := Parse(startStr)
	end := Parse(endStr)

	switch {
	case start == nil && end == nil:
		return ""
	case start == nil:
		return end.Display()
	case end == nil, end.IsPresent:
		return start.Display() + " – Present"
	}

	if start.Year == end.Year && start.HasMonth && end.HasMonth {
		return fmt.Sprintf("%s – %s %d", monthAbbr[start.Month], monthAbbr[end.Month], end.Year)
	}
	return start.Display() + " – " + end.Display()
}

// rangeSeparators are tried in order against duration strings.
var rangeSeparators = []string{" - ", " – ", " to ", " until ", " through "}

// NormalizeDuration normalizes a duration string that may already be
// formatted as a range. Unparseable input is returned verbatim: never
// destroy data the caller cannot re-derive.
func NormalizeDuration(duration string) string {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return ""
	}

	lower := strings.ToLower(duration)
	for _, sep := range rangeSeparators {
		sepLower := strings.ToLower(sep)
		if strings.Count(lower, sepLower) == 1 {
			idx := strings.Index(lower, sepLower)
			start := strings.TrimSpace(duration[:idx])
			end := strings.TrimSpace(duration[idx+len(sep):])
			return FormatDateRange(start, end)
		}
	}

	if parsed := Parse(duration); parsed != nil {
		return parsed.Display()
	}
	return duration
}
