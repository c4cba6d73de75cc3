package modules

import (
	"berdoz/internal/core"
	"berdoz/internal/favm"
)

func DailyAccount() favm.Module[core.DailyAccount] {
	return favm.Module[core.DailyAccount]{
		Name:       DailyAccounts,
		Endpoint:   Endpoint(DailyAccounts),
		TempPrefix: "daily-",
		Fields: []favm.WeightedField[core.DailyAccount]{
			field("purpose", 1, func(a core.DailyAccount) string { return a.Purpose }),
			field("checkNumber", 0.8, func(a core.DailyAccount) string { return a.CheckNumber }),
			field("week", 0.6, func(a core.DailyAccount) string { return a.Week }),
			field("notes", 0.4, func(a core.DailyAccount) string { return a.Notes }),
		},
		Searchable: func(a core.DailyAccount) string {
			var b favm.ContentBuilder
			return b.Text(itoa(a.Number), a.DayOfWeek).Cost(a.Amount).Date(a.Date).String()
		},
		Totals: favm.Totals[core.DailyAccount]{
			Primitives: []favm.Primitive[core.DailyAccount]{
				sum("totalAmount", func(a core.DailyAccount) core.Money { return a.Amount }),
			},
		},
	}
}
