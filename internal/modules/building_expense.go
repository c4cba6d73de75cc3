package modules

import (
	"berdoz/internal/core"
	"berdoz/internal/favm"
)

func BuildingExpense() favm.Module[core.BuildingExpense] {
	return favm.Module[core.BuildingExpense]{
		Name:       BuildingExpenses,
		Endpoint:   Endpoint(BuildingExpenses),
		TempPrefix: "building-",
		Fields: []favm.WeightedField[core.BuildingExpense]{
			field("item", 1, func(e core.BuildingExpense) string { return e.Item }),
			field("notes", 0.5, func(e core.BuildingExpense) string { return e.Notes }),
		},
		Searchable: func(e core.BuildingExpense) string {
			var b favm.ContentBuilder
			return b.Cost(e.Cost).Period(e.Year, e.Month).Date(e.Date).String()
		},
		Totals: favm.Totals[core.BuildingExpense]{
			Primitives: []favm.Primitive[core.BuildingExpense]{
				sum("totalCost", func(e core.BuildingExpense) core.Money { return e.Cost }),
			},
		},
	}
}
