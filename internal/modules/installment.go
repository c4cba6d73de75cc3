package modules

import (
	"berdoz/internal/core"
	"berdoz/internal/favm"
)

// Installment totals. collectionRate is the received share of the annual
// amount, in percent.
const (
	TotalAnnual    = "totalAnnual"
	TotalReceived  = "totalReceived"
	TotalRemaining = "totalRemaining"
	CollectionRate = "collectionRate"
)

func Installment() favm.Module[core.Installment] {
	return favm.Module[core.Installment]{
		Name:       Installments,
		Endpoint:   Endpoint(Installments),
		TempPrefix: "installment-",
		Fields: []favm.WeightedField[core.Installment]{
			field("fullName", 1, func(i core.Installment) string { return i.FullName }),
			field("grade", 0.7, func(i core.Installment) string { return i.Grade }),
			field("installmentType", 0.6, func(i core.Installment) string { return i.InstallmentType }),
			field("notes", 0.4, func(i core.Installment) string { return i.Notes }),
		},
		Searchable: func(i core.Installment) string {
			var b favm.ContentBuilder
			b.Text(i.Year.String()).Cost(i.AnnualAmount).Money(i.TotalReceived()).Money(i.Remaining())
			if i.Remaining().IsZero() && !i.AnnualAmount.IsZero() {
				b.Text("paid")
			}
			return b.String()
		},
		Totals: favm.Totals[core.Installment]{
			Primitives: []favm.Primitive[core.Installment]{
				sum(TotalAnnual, func(i core.Installment) core.Money { return i.AnnualAmount }),
				sum(TotalReceived, core.Installment.TotalReceived),
				sum(TotalRemaining, core.Installment.Remaining),
			},
			Composites: []favm.Composite{
				{Name: CollectionRate, Compute: func(s map[string]core.Money) core.Money {
					return core.Ratio(s[TotalReceived], s[TotalAnnual])
				}},
			},
		},
	}
}
