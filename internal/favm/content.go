package favm

import (
	"strings"
	"time"

	"berdoz/internal/core"
)

// ContentBuilder assembles the searchableContent text of a record: raw
// values plus the formatted forms a user is likely to type.
type ContentBuilder struct {
	parts []string
}

func (b *ContentBuilder) Text(values ...string) *ContentBuilder {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			b.parts = append(b.parts, v)
		}
	}
	return b
}

// Money adds the plain and thousands-separated forms of an amount.
func (b *ContentBuilder) Money(m core.Money) *ContentBuilder {
	if m.IsZero() {
		return b
	}
	return b.Text(m.String(), m.Format(), m.FormatIQD())
}

// Cost adds an amount together with its cost bucket.
func (b *ContentBuilder) Cost(m core.Money) *ContentBuilder {
	return b.Money(m).Text(string(core.BucketOf(m)))
}

// Date adds the date and its calendar labels.
func (b *ContentBuilder) Date(d core.Date) *ContentBuilder {
	return b.Text(d.String()).Text(d.Labels()...)
}

// Period adds a year and month label and the month's names.
func (b *ContentBuilder) Period(year, month core.PeriodPart) *ContentBuilder {
	b.Text(year.String(), month.String())
	if n := month.Int(); n >= 1 && n <= 12 {
		m := time.Month(n)
		b.Text(m.String(), core.MonthNameKu(m), string(core.SeasonOf(m)), core.SeasonNameKu(core.SeasonOf(m)))
	}
	return b
}

func (b *ContentBuilder) String() string {
	return strings.Join(b.parts, " ")
}
