// Package modules declares the record modules of the school: their
// endpoints, searchable fields and totals.
package modules

import (
	"strconv"

	"berdoz/internal/core"
	"berdoz/internal/favm"
)

// Module names. Each is also the last segment of the module's endpoint.
const (
	BuildingExpenses = "building-expenses"
	DailyAccounts    = "daily-accounts"
	Installments     = "installments"
	Payroll          = "payroll"
	Supervision      = "supervision"
	Teachers         = "teachers"
	KitchenExpenses  = "kitchen-expenses"
	MonthlyExpenses  = "monthly-expenses"
	Calendar         = "calendar"
)

// Names lists every module in display order.
var Names = []string{
	BuildingExpenses, DailyAccounts, Installments, Payroll, Supervision, Teachers,
	KitchenExpenses, MonthlyExpenses, Calendar,
}

// Endpoint returns the REST base path of a module.
func Endpoint(name string) string {
	return "/api/" + name
}

// TempPrefixes returns the client-side id prefixes of all modules.
func TempPrefixes() []string {
	return []string{
		BuildingExpense().TempPrefix,
		DailyAccount().TempPrefix,
		Installment().TempPrefix,
		PayrollEntry().TempPrefix,
		SupervisionEntry().TempPrefix,
		Teacher().TempPrefix,
		KitchenExpense().TempPrefix,
		MonthlyExpense().TempPrefix,
		CalendarEntry().TempPrefix,
	}
}

func field[T any](name string, weight float64, get func(T) string) favm.WeightedField[T] {
	return favm.WeightedField[T]{Name: name, Weight: weight, Value: get}
}

func sum[T any](name string, get func(T) core.Money) favm.Primitive[T] {
	return favm.Primitive[T]{Name: name, Field: func(r T) any { return get(r) }}
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
