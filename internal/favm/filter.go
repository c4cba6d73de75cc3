package favm

import (
	"strconv"
	"strings"

	"berdoz/internal/core"
)

const (
	AllYears  = "all"
	AllMonths = "all"
)

// PeriodFilter selects records by year and month. "all" and the empty
// string match everything.
type PeriodFilter struct {
	Year  string `json:"year"`
	Month string `json:"month"`
}

// AllPeriods is the filter that keeps every record.
var AllPeriods = PeriodFilter{Year: AllYears, Month: AllMonths}

// Matches reports whether a record filed under year and month passes.
func (f PeriodFilter) Matches(year, month core.PeriodPart) bool {
	return partMatches(f.Year, AllYears, string(year)) &&
		partMatches(f.Month, AllMonths, string(month))
}

func partMatches(want, all, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" || want == all {
		return true
	}
	got = strings.TrimSpace(got)
	if a, err := strconv.Atoi(want); err == nil {
		if b, err := strconv.Atoi(got); err == nil {
			return a == b
		}
	}
	return want == got
}

// Apply returns the records whose period passes the filter, in order.
func Apply[T core.Record[T]](records []T, f PeriodFilter) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if f.Matches(r.Period()) {
			out = append(out, r)
		}
	}
	return out
}
