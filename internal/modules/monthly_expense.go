package modules

import (
	"berdoz/internal/core"
	"berdoz/internal/favm"
)

// Monthly expense totals, one per cost column plus their sum.
const (
	TotalStaffSalary   = "totalStaffSalary"
	TotalExpenses      = "totalExpenses"
	TotalBuildingRent  = "totalBuildingRent"
	TotalDramaFee      = "totalDramaFee"
	TotalSocialSupport = "totalSocialSupport"
	TotalElectricity   = "totalElectricity"
	TotalMonthly       = "grandTotal"
)

func MonthlyExpense() favm.Module[core.MonthlyExpense] {
	return favm.Module[core.MonthlyExpense]{
		Name:       MonthlyExpenses,
		Endpoint:   Endpoint(MonthlyExpenses),
		TempPrefix: "monthly-",
		Fields: []favm.WeightedField[core.MonthlyExpense]{
			field("requirement", 1, func(e core.MonthlyExpense) string { return e.Requirement }),
			field("notes", 0.5, func(e core.MonthlyExpense) string { return e.Notes }),
		},
		Searchable: func(e core.MonthlyExpense) string {
			var b favm.ContentBuilder
			return b.Cost(e.Total()).Money(e.StaffSalary).Period(e.Year, e.Month).String()
		},
		Totals: favm.Totals[core.MonthlyExpense]{
			Primitives: []favm.Primitive[core.MonthlyExpense]{
				sum(TotalStaffSalary, func(e core.MonthlyExpense) core.Money { return e.StaffSalary }),
				sum(TotalExpenses, func(e core.MonthlyExpense) core.Money { return e.Expenses }),
				sum(TotalBuildingRent, func(e core.MonthlyExpense) core.Money { return e.BuildingRent }),
				sum(TotalDramaFee, func(e core.MonthlyExpense) core.Money { return e.DramaFee }),
				sum(TotalSocialSupport, func(e core.MonthlyExpense) core.Money { return e.SocialSupport }),
				sum(TotalElectricity, func(e core.MonthlyExpense) core.Money { return e.Electricity }),
			},
			Composites: []favm.Composite{
				{Name: TotalMonthly, Compute: func(s map[string]core.Money) core.Money {
					return s[TotalStaffSalary].Add(s[TotalExpenses]).Add(s[TotalBuildingRent]).
						Add(s[TotalDramaFee]).Add(s[TotalSocialSupport]).Add(s[TotalElectricity])
				}},
			},
		},
	}
}
