package core

import "time"

// Season is a meteorological season of the northern hemisphere.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
)

var (
	monthNamesKu = [...]string{
		"کانونی دووەم", "شوبات", "ئازار", "نیسان", "ئایار", "حوزەیران",
		"تەمووز", "ئاب", "ئەیلوول", "تشرینی یەکەم", "تشرینی دووەم", "کانونی یەکەم",
	}
	dayNamesKu = [...]string{
		"یەکشەممە", "دووشەممە", "سێشەممە", "چوارشەممە", "پێنجشەممە", "هەینی", "شەممە",
	}
	seasonNamesKu = map[Season]string{
		Winter: "زستان",
		Spring: "بەهار",
		Summer: "هاوین",
		Autumn: "پاییز",
	}
)

// SeasonOf returns the season a month falls in.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Autumn
	}
}

// MonthNameKu returns the Kurdish (Sorani) month name.
func MonthNameKu(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNamesKu[m-1]
}

// DayNameKu returns the Kurdish (Sorani) weekday name.
func DayNameKu(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return dayNamesKu[d]
}

// SeasonNameKu returns the Kurdish (Sorani) season name.
func SeasonNameKu(s Season) string {
	return seasonNamesKu[s]
}

// Labels returns the searchable calendar words for a date: weekday, month
// and season in English and Kurdish, plus the year. The zero Date has none.
func (d Date) Labels() []string {
	if d.IsZero() {
		return nil
	}
	season := SeasonOf(d.Time.Month())
	return []string{
		d.Weekday().String(),
		DayNameKu(d.Weekday()),
		d.Time.Month().String(),
		MonthNameKu(d.Time.Month()),
		string(season),
		SeasonNameKu(season),
		d.Format("2006"),
	}
}

// CostBucket is a coarse tier of an amount.
type CostBucket string

const (
	CostLow      CostBucket = "low"
	CostMedium   CostBucket = "medium"
	CostHigh     CostBucket = "high"
	CostVeryHigh CostBucket = "very-high"
)

var (
	bucketMedium   = NewMoney(100_000)
	bucketHigh     = NewMoney(500_000)
	bucketVeryHigh = NewMoney(1_000_000)
)

// BucketOf places an amount in its tier.
func BucketOf(m Money) CostBucket {
	switch {
	case m.Cmp(bucketMedium) < 0:
		return CostLow
	case m.Cmp(bucketHigh) < 0:
		return CostMedium
	case m.Cmp(bucketVeryHigh) < 0:
		return CostHigh
	default:
		return CostVeryHigh
	}
}
