package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// EraOffset is the fixed distance between the Buddhist and common era.
	EraOffset = 543

	// buddhistEraFloor: any raw year above this is taken to be a Buddhist-era
	// value. Common-era years this large cannot occur for user-entered
	// birthdates or check-in dates.
	buddhistEraFloor = 2100

	// DayKeyLayout is the canonical day-string format. Keys in this format
	// sort lexicographically in date order, which the streak engine relies on.
	DayKeyLayout = "2006-01-02"

	// MonthKeyLayout is the canonical period-key format used by the freeze
	// quota bookkeeping.
	MonthKeyLayout = "2006-01"
)

// Year is a common-era (Gregorian) calendar year.
type Year int

// EraYear is a Buddhist-era calendar year (common + 543). Keeping the two
// eras as distinct types makes accidental double conversion a compile error
// at package boundaries.
type EraYear int

// Buddhist converts a common-era year to its Buddhist-era equivalent.
func (y Year) Buddhist() EraYear { return EraYear(int(y) + EraOffset) }

// Common converts a Buddhist-era year to its common-era equivalent.
func (y EraYear) Common() Year { return Year(int(y) - EraOffset) }

// IsBuddhistYear reports whether a raw, era-ambiguous year should be read as
// a Buddhist-era value.
func IsBuddhistYear(raw int) bool { return raw > buddhistEraFloor }

// NormalizeYear maps a raw, era-ambiguous year onto the common era.
//
// Apply it exactly once per raw input. The function does not defend against
// being called on an already-normalized year; a common-era year above 2100
// would be shifted again.
func NormalizeYear(raw int) Year {
	if IsBuddhistYear(raw) {
		return EraYear(raw).Common()
	}
	return Year(raw)
}

// CurrentYears returns the current year in both eras.
func CurrentYears(now time.Time) (Year, EraYear) {
	y := Year(now.UTC().Year())
	return y, y.Buddhist()
}

// DayKey renders the canonical YYYY-MM-DD key for the UTC date of t.
func DayKey(t time.Time) string { return t.UTC().Format(DayKeyLayout) }

// MonthKey renders the canonical YYYY-MM period key for the UTC date of t.
func MonthKey(t time.Time) string { return t.UTC().Format(MonthKeyLayout) }

// ParseDayKey parses a canonical day key back into a UTC midnight instant.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// flexiblePatterns are tried in order. Each pattern captures strict digit
// groups (4-digit year, 1-2 digit day/month).
var flexiblePatterns = []struct {
	re               *regexp.Regexp
	year, month, day int
}{
	{regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`), 1, 2, 3}, // YYYY-MM-DD
	{regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`), 3, 2, 1}, // DD/MM/YYYY
	{regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`), 3, 2, 1}, // DD-MM-YYYY
}

// fallbackLayouts is the best-effort generic parse used when none of the
// strict patterns match. Deliberately NO era normalization happens on this
// path; only the strict patterns carry a year through NormalizeYear.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseFlexibleDate parses loosely-formatted user date text into a UTC
// midnight instant. The three strict patterns normalize a Buddhist-era year
// to the common era; the generic fallback does not.
func ParseFlexibleDate(text string) (time.Time, error) {
	trimmed := strings.TrimSpace(text)

	for _, p := range flexiblePatterns {
		m := p.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[p.year])
		month, _ := strconv.Atoi(m[p.month])
		day, _ := strconv.Atoi(m[p.day])

		return time.Date(int(NormalizeYear(year)), time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date text %q", text)
}
