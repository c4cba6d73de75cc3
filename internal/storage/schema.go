package storage

import "berdoz/internal/core"

// Module table layouts. Column names match the db tags of the record types.
var (
	BuildingExpenseSchema = Schema{
		Table:   "building_expenses",
		Columns: []string{"item", "cost", "year", "month", "date", "notes", "images"},
	}
	DailyAccountSchema = Schema{
		Table: "daily_accounts",
		Columns: []string{"number", "week", "purpose", "check_number", "amount", "date",
			"day_of_week", "receipt_images", "notes"},
	}
	InstallmentSchema = Schema{
		Table: "installments",
		Columns: []string{"full_name", "grade", "installment_type", "year", "annual_amount",
			"first_installment", "second_installment", "third_installment",
			"fourth_installment", "fifth_installment", "sixth_installment",
			"receipt_images", "notes"},
	}
	PayrollSchema = Schema{
		Table:   "payroll",
		Columns: []string{"employee_name", "salary", "absence", "deduction", "bonus", "month", "year", "notes"},
	}
	SupervisionSchema = Schema{
		Table: "supervision",
		Columns: []string{"teacher_name", "subject", "teacher_department", "teacher_grade",
			"teacher_violation_type", "teacher_punishment_type", "student_name",
			"student_department", "student_grade", "student_violation_type",
			"student_punishment_type", "date", "notes"},
	}
	TeacherSchema = Schema{
		Table: "teachers",
		Columns: []string{"full_name", "birth_year", "certificate", "job_title", "specialist",
			"graduation_date", "start_date", "previous_institution", "blood_type",
			"certificate_images", "notes"},
	}
	KitchenExpenseSchema = Schema{
		Table:   "kitchen_expenses",
		Columns: []string{"item", "cost", "purpose", "year", "month", "date", "receipt_images", "notes"},
	}
	MonthlyExpenseSchema = Schema{
		Table: "monthly_expenses",
		Columns: []string{"year", "month", "staff_salary", "expenses", "building_rent", "drama_fee",
			"social_support", "electricity", "requirement", "receipt_images", "notes"},
	}
	CalendarSchema = Schema{
		Table:   "calendar_entries",
		Columns: []string{"year", "month", "week1", "week2", "week3", "week4", "notes"},
	}
)

// Tables groups the repositories of every module.
type Tables struct {
	BuildingExpenses Repository[core.BuildingExpense]
	DailyAccounts    Repository[core.DailyAccount]
	Installments     Repository[core.Installment]
	Payroll          Repository[core.PayrollEntry]
	Supervision      Repository[core.SupervisionEntry]
	Teachers         Repository[core.Teacher]
	KitchenExpenses  Repository[core.KitchenExpense]
	MonthlyExpenses  Repository[core.MonthlyExpense]
	Calendar         Repository[core.CalendarEntry]
}

// Tables returns sqlite repositories for all modules.
func (r *SQLiteRepository) Tables() Tables {
	return Tables{
		BuildingExpenses: NewTable[core.BuildingExpense](r, BuildingExpenseSchema),
		DailyAccounts:    NewTable[core.DailyAccount](r, DailyAccountSchema),
		Installments:     NewTable[core.Installment](r, InstallmentSchema),
		Payroll:          NewTable[core.PayrollEntry](r, PayrollSchema),
		Supervision:      NewTable[core.SupervisionEntry](r, SupervisionSchema),
		Teachers:         NewTable[core.Teacher](r, TeacherSchema),
		KitchenExpenses:  NewTable[core.KitchenExpense](r, KitchenExpenseSchema),
		MonthlyExpenses:  NewTable[core.MonthlyExpense](r, MonthlyExpenseSchema),
		Calendar:         NewTable[core.CalendarEntry](r, CalendarSchema),
	}
}
