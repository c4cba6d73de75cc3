package core

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SchoolDays is the number of cells in a week of the calendar.
const SchoolDays = 5

// WeekPlan holds the activity of each school day of one week, Sunday to
// Thursday. It is stored as a JSON column.
type WeekPlan []string

// CalendarEntry is the four-week activity plan of a month.
type CalendarEntry struct {
	Meta
	Year  PeriodPart `json:"year" db:"year" validate:"omitempty,numeric"`
	Month PeriodPart `json:"month" db:"month" validate:"omitempty,numeric"`
	Week1 WeekPlan   `json:"week1" db:"week1" validate:"max=5,dive,max=200"`
	Week2 WeekPlan   `json:"week2" db:"week2" validate:"max=5,dive,max=200"`
	Week3 WeekPlan   `json:"week3" db:"week3" validate:"max=5,dive,max=200"`
	Week4 WeekPlan   `json:"week4" db:"week4" validate:"max=5,dive,max=200"`
	Notes string     `json:"notes" db:"notes" validate:"max=2000"`
}

var abbreviation = regexp.MustCompile(`\b[A-Z][A-Z0-9]*\b`)

func (c CalendarEntry) WithMeta(m Meta) CalendarEntry {
	c.Meta = m
	return c
}

// WithDefaults fills the current year and month and pads every week to
// SchoolDays cells.
func (c CalendarEntry) WithDefaults(now time.Time) CalendarEntry {
	if c.Year == "" {
		c.Year = PeriodPart(strconv.Itoa(now.Year()))
	}
	if c.Month == "" {
		c.Month = PeriodPart(strconv.Itoa(int(now.Month())))
	}
	c.Week1, c.Week2, c.Week3, c.Week4 = c.Week1.padded(), c.Week2.padded(), c.Week3.padded(), c.Week4.padded()
	return c
}

func (c CalendarEntry) Period() (PeriodPart, PeriodPart) {
	return c.Year, c.Month
}

// Weeks returns the four weeks in order.
func (c CalendarEntry) Weeks() [4]WeekPlan {
	return [4]WeekPlan{c.Week1, c.Week2, c.Week3, c.Week4}
}

// Cells returns every non-blank cell of the month.
func (c CalendarEntry) Cells() []string {
	var out []string
	for _, w := range c.Weeks() {
		for _, cell := range w {
			if cell = strings.TrimSpace(cell); cell != "" {
				out = append(out, cell)
			}
		}
	}
	return out
}

// PlannedDays counts the days with an activity.
func (c CalendarEntry) PlannedDays() int {
	return len(c.Cells())
}

// Abbreviations lists the distinct upper-case codes used in the cells,
// such as "PTM" or "E2", sorted.
func (c CalendarEntry) Abbreviations() []string {
	seen := make(map[string]struct{})
	for _, cell := range c.Cells() {
		for _, a := range abbreviation.FindAllString(cell, -1) {
			seen[a] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON adds the derived codes to the stored fields.
func (c CalendarEntry) MarshalJSON() ([]byte, error) {
	type stored CalendarEntry
	return json.Marshal(struct {
		stored
		Abbreviations []string `json:"abbreviations"`
	}{stored(c), c.Abbreviations()})
}

func (w WeekPlan) padded() WeekPlan {
	if len(w) >= SchoolDays {
		return w
	}
	out := make(WeekPlan, SchoolDays)
	copy(out, w)
	return out
}

// Scan implements sql.Scanner.
func (w *WeekPlan) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*w = WeekPlan{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scan week plan: unsupported type %T", src)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		*w = WeekPlan{}
		return nil
	}
	var out WeekPlan
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan week plan: %w", err)
	}
	*w = out
	return nil
}

// Value implements driver.Valuer.
func (w WeekPlan) Value() (driver.Value, error) {
	if w == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(w))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
