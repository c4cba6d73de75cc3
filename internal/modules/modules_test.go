package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berdoz/internal/core"
	"berdoz/internal/favm"
)

func TestInstallmentTotals(t *testing.T) {
	m := Installment()
	rec := core.Installment{
		Meta:              core.Meta{ID: "i1"},
		FullName:          "Lana Hussein",
		Year:              "2025",
		AnnualAmount:      core.NewMoney(2000000),
		FirstInstallment:  core.NewMoney(400000),
		SecondInstallment: core.NewMoney(400000),
		ThirdInstallment:  core.NewMoney(400000),
		FourthInstallment: core.NewMoney(400000),
		FifthInstallment:  core.NewMoney(400000),
	}

	assert.True(t, rec.TotalReceived().Equal(core.NewMoney(1600000)))
	assert.True(t, rec.Remaining().Equal(core.NewMoney(400000)))

	v := m.Pipeline().Run([]core.Installment{rec}, favm.DefaultViewState())
	assert.True(t, v.Totals.Get(TotalAnnual).Equal(core.NewMoney(2000000)))
	assert.True(t, v.Totals.Get(TotalReceived).Equal(core.NewMoney(1600000)))
	assert.True(t, v.Totals.Get(TotalRemaining).Equal(core.NewMoney(400000)))
	assert.True(t, v.Totals.Get(CollectionRate).Equal(core.NewMoney(80)))
}

func TestInstallmentCollectionRateWithoutAnnual(t *testing.T) {
	v := Installment().Pipeline().Run([]core.Installment{{FirstInstallment: core.NewMoney(10)}}, favm.DefaultViewState())
	assert.True(t, v.Totals.Get(CollectionRate).IsZero())
}

func TestPayrollTotals(t *testing.T) {
	m := PayrollEntry()
	recs := []core.PayrollEntry{
		{EmployeeName: "Ahmed", Year: "2025", Month: "1", Salary: core.NewMoney(1200000), Absence: core.NewMoney(50000), Deduction: core.NewMoney(25000), Bonus: core.NewMoney(100000)},
		{EmployeeName: "Shilan", Year: "2025", Month: "1", Salary: core.NewMoney(800000)},
	}

	assert.True(t, recs[0].Total().Equal(core.NewMoney(1225000)))

	v := m.Pipeline().Run(recs, favm.DefaultViewState())
	assert.True(t, v.Totals.Get(TotalDeductions).Equal(core.NewMoney(75000)))
	assert.True(t, v.Totals.Get(GrandTotal).Equal(core.NewMoney(2025000)))
}

func TestSupervisionCounts(t *testing.T) {
	recs := []core.SupervisionEntry{
		{TeacherName: "Karwan"},
		{StudentName: "Rezan"},
		{TeacherName: "Hawre", StudentName: "Soma"},
	}
	v := SupervisionEntry().Pipeline().Run(recs, favm.DefaultViewState())
	assert.True(t, v.Totals.Get(TeacherCases).Equal(core.NewMoney(2)))
	assert.True(t, v.Totals.Get(StudentCases).Equal(core.NewMoney(2)))
}

func TestBuildingExpenseSearchByBucketAndAmount(t *testing.T) {
	m := BuildingExpense()
	recs := []core.BuildingExpense{
		{Meta: core.Meta{ID: "cheap"}, Item: "Light bulbs", Cost: core.NewMoney(45000)},
		{Meta: core.Meta{ID: "roof"}, Item: "Roof repair", Cost: core.NewMoney(2500000)},
	}

	got := m.Matcher().Match(recs, "very-high")
	require.Len(t, got, 1)
	assert.Equal(t, "roof", got[0].ID)

	got = m.Matcher().Match(recs, "45,000")
	require.Len(t, got, 1)
	assert.Equal(t, "cheap", got[0].ID)
}

func TestDailyAccountSearchByKurdishWeekday(t *testing.T) {
	a := core.DailyAccount{Meta: core.Meta{ID: "d1"}, Purpose: "Stationery", Date: core.NewDate(2025, 3, 7)}.WithDefaults(core.NewDate(2025, 3, 7).Time)
	b := core.DailyAccount{Meta: core.Meta{ID: "d2"}, Purpose: "Cleaning", Date: core.NewDate(2025, 3, 9)}.WithDefaults(core.NewDate(2025, 3, 9).Time)

	got := DailyAccount().Matcher().Match([]core.DailyAccount{a, b}, "هەینی")
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
}

func TestTeacherSearch(t *testing.T) {
	recs := []core.Teacher{
		{Meta: core.Meta{ID: "t1"}, FullName: "Hana Ali", Specialist: "Mathematics"},
		{Meta: core.Meta{ID: "t2"}, FullName: "Dara Kamal", Specialist: "Physics"},
	}
	got := Teacher().Matcher().Match(recs, "mathematcs")
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestCatalogue(t *testing.T) {
	assert.Len(t, Names, 9)
	assert.Equal(t, "/api/monthly-expenses", MonthlyExpense().Endpoint)
	assert.Equal(t, "/api/installments", Installment().Endpoint)
	assert.Equal(t, "/api/payroll", PayrollEntry().Endpoint)

	prefixes := TempPrefixes()
	assert.Len(t, prefixes, len(Names))
	assert.Contains(t, prefixes, "installment-")
	for _, p := range prefixes {
		assert.False(t, core.IsPersistedID(p+"17", prefixes...))
	}
}

func TestKitchenExpenseTotalsByMonth(t *testing.T) {
	now := core.NewDate(2025, 5, 1).Time
	recs := []core.KitchenExpense{
		core.KitchenExpense{Meta: core.Meta{ID: "k1"}, Item: "Rice", Cost: core.NewMoney(60000), Date: core.NewDate(2025, 4, 2)}.WithDefaults(now),
		core.KitchenExpense{Meta: core.Meta{ID: "k2"}, Item: "Oil", Cost: core.NewMoney(40000), Date: core.NewDate(2025, 5, 3)}.WithDefaults(now),
		core.KitchenExpense{Meta: core.Meta{ID: "k3"}, Item: "Gas", Cost: core.CoerceMoney("n/a")}.WithDefaults(now),
	}
	assert.Equal(t, core.PeriodPart("4"), recs[0].Month)
	assert.Equal(t, core.PeriodPart("2025"), recs[2].Year)

	state := favm.DefaultViewState()
	state.Table = favm.PeriodFilter{Year: "2025", Month: "5"}
	v := KitchenExpense().Pipeline().Run(recs, state)
	assert.Equal(t, 2, v.Count)
	assert.True(t, v.Totals.Get("totalCost").Equal(core.NewMoney(40000)))
	assert.True(t, v.Summary.Totals.Get("totalCost").Equal(core.NewMoney(100000)))
}

func TestMonthlyExpenseTotals(t *testing.T) {
	recs := []core.MonthlyExpense{
		{Year: "2025", Month: "1", StaffSalary: core.NewMoney(5000000), BuildingRent: core.NewMoney(1000000), Electricity: core.NewMoney(250000)},
		{Year: "2025", Month: "2", StaffSalary: core.NewMoney(5000000), DramaFee: core.NewMoney(100000)},
	}
	assert.True(t, recs[0].Total().Equal(core.NewMoney(6250000)))

	v := MonthlyExpense().Pipeline().Run(recs, favm.DefaultViewState())
	assert.True(t, v.Totals.Get(TotalStaffSalary).Equal(core.NewMoney(10000000)))
	assert.True(t, v.Totals.Get(TotalMonthly).Equal(core.NewMoney(11350000)))
}

func TestCalendarSearchAndPlannedDays(t *testing.T) {
	now := core.NewDate(2025, 4, 1).Time
	recs := []core.CalendarEntry{
		core.CalendarEntry{Meta: core.Meta{ID: "apr"}, Year: "2025", Month: "4", Week1: core.WeekPlan{"PTM meeting", "", "Exam E2"}}.WithDefaults(now),
		core.CalendarEntry{Meta: core.Meta{ID: "may"}, Year: "2025", Month: "5", Week2: core.WeekPlan{"Sports day"}}.WithDefaults(now),
	}
	assert.Len(t, recs[1].Week1, core.SchoolDays)
	assert.Equal(t, []string{"E2", "PTM"}, recs[0].Abbreviations())

	got := CalendarEntry().Matcher().Match(recs, "sports")
	require.Len(t, got, 1)
	assert.Equal(t, "may", got[0].ID)

	got = CalendarEntry().Matcher().Match(recs, "april")
	require.Len(t, got, 1)
	assert.Equal(t, "apr", got[0].ID)

	v := CalendarEntry().Pipeline().Run(recs, favm.DefaultViewState())
	assert.True(t, v.Totals.Get(PlannedDays).Equal(core.NewMoney(3)))
}
