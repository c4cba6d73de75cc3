package modules

import (
	"strings"

	"berdoz/internal/core"
	"berdoz/internal/favm"
)

const PlannedDays = "plannedDays"

func CalendarEntry() favm.Module[core.CalendarEntry] {
	return favm.Module[core.CalendarEntry]{
		Name:       Calendar,
		Endpoint:   Endpoint(Calendar),
		TempPrefix: "calendar-",
		Fields: []favm.WeightedField[core.CalendarEntry]{
			field("activities", 1, func(c core.CalendarEntry) string { return strings.Join(c.Cells(), " ") }),
			field("notes", 0.5, func(c core.CalendarEntry) string { return c.Notes }),
		},
		Searchable: func(c core.CalendarEntry) string {
			var b favm.ContentBuilder
			return b.Period(c.Year, c.Month).Text(c.Abbreviations()...).String()
		},
		Totals: favm.Totals[core.CalendarEntry]{
			Primitives: []favm.Primitive[core.CalendarEntry]{
				{Name: PlannedDays, Field: func(c core.CalendarEntry) any { return c.PlannedDays() }},
			},
		},
	}
}
