package modules

import (
	"berdoz/internal/core"
	"berdoz/internal/favm"
)

// Payroll totals. totalDeductions and grandTotal are composed from the
// column sums.
const (
	TotalSalary     = "totalSalary"
	TotalAbsence    = "totalAbsence"
	TotalDeduction  = "totalDeduction"
	TotalBonuses    = "totalBonuses"
	TotalDeductions = "totalDeductions"
	GrandTotal      = "grandTotal"
)

func PayrollEntry() favm.Module[core.PayrollEntry] {
	return favm.Module[core.PayrollEntry]{
		Name:       Payroll,
		Endpoint:   Endpoint(Payroll),
		TempPrefix: "payroll-",
		Fields: []favm.WeightedField[core.PayrollEntry]{
			field("employeeName", 1, func(p core.PayrollEntry) string { return p.EmployeeName }),
			field("notes", 0.5, func(p core.PayrollEntry) string { return p.Notes }),
		},
		Searchable: func(p core.PayrollEntry) string {
			var b favm.ContentBuilder
			return b.Money(p.Salary).Money(p.Total()).Period(p.Year, p.Month).String()
		},
		Totals: favm.Totals[core.PayrollEntry]{
			Primitives: []favm.Primitive[core.PayrollEntry]{
				sum(TotalSalary, func(p core.PayrollEntry) core.Money { return p.Salary }),
				sum(TotalAbsence, func(p core.PayrollEntry) core.Money { return p.Absence }),
				sum(TotalDeduction, func(p core.PayrollEntry) core.Money { return p.Deduction }),
				sum(TotalBonuses, func(p core.PayrollEntry) core.Money { return p.Bonus }),
			},
			Composites: []favm.Composite{
				{Name: TotalDeductions, Compute: func(s map[string]core.Money) core.Money {
					return s[TotalAbsence].Add(s[TotalDeduction])
				}},
				{Name: GrandTotal, Compute: func(s map[string]core.Money) core.Money {
					return s[TotalSalary].Sub(s[TotalDeductions]).Add(s[TotalBonuses])
				}},
			},
		},
	}
}
