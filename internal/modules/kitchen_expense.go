package modules

import (
	"berdoz/internal/core"
	"berdoz/internal/favm"
)

func KitchenExpense() favm.Module[core.KitchenExpense] {
	return favm.Module[core.KitchenExpense]{
		Name:       KitchenExpenses,
		Endpoint:   Endpoint(KitchenExpenses),
		TempPrefix: "kitchen-",
		Fields: []favm.WeightedField[core.KitchenExpense]{
			field("item", 1, func(e core.KitchenExpense) string { return e.Item }),
			field("purpose", 0.7, func(e core.KitchenExpense) string { return e.Purpose }),
			field("notes", 0.5, func(e core.KitchenExpense) string { return e.Notes }),
		},
		Searchable: func(e core.KitchenExpense) string {
			var b favm.ContentBuilder
			return b.Cost(e.Cost).Period(e.Year, e.Month).Date(e.Date).String()
		},
		Totals: favm.Totals[core.KitchenExpense]{
			Primitives: []favm.Primitive[core.KitchenExpense]{
				sum("totalCost", func(e core.KitchenExpense) core.Money { return e.Cost }),
			},
		},
	}
}
