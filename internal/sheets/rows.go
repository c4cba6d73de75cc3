package sheets

import (
	"fmt"
	"strings"

	"berdoz/internal/core"
)

// Headers of each module tab after the leading "ID" column.
var (
	buildingExpenseHeader = []string{"Item", "Cost", "Year", "Month", "Date", "Notes", "Images"}
	dailyAccountHeader    = []string{"Number", "Week", "Purpose", "Check", "Amount", "Date", "Day", "Notes", "Receipts"}
	installmentHeader     = []string{"Name", "Grade", "Type", "Year", "Annual", "1st", "2nd", "3rd", "4th", "5th", "6th", "Received", "Remaining", "Notes"}
	payrollHeader         = []string{"Employee", "Salary", "Absence", "Deduction", "Bonus", "Total", "Month", "Year", "Notes"}
	supervisionHeader     = []string{"Teacher", "Subject", "Teacher Dept", "Teacher Grade", "Teacher Violation", "Teacher Punishment",
		"Student", "Student Dept", "Student Grade", "Student Violation", "Student Punishment", "Date", "Notes"}
	kitchenExpenseHeader = []string{"Item", "Cost", "Purpose", "Year", "Month", "Date", "Notes", "Receipts"}
	monthlyExpenseHeader = []string{"Year", "Month", "Staff Salary", "Expenses", "Building Rent", "Drama Fee",
		"Social Support", "Electricity", "Total", "Requirement", "Notes", "Receipts"}
	calendarHeader = []string{"Year", "Month", "Week 1", "Week 2", "Week 3", "Week 4", "Codes", "Notes"}
	teacherHeader  = []string{"Name", "Birth Year", "Certificate", "Job Title", "Specialist", "Graduation", "Start", "Previous Institution", "Blood Type", "Notes", "Certificates"}
)

// RowOf renders a record of the given module tab. Amounts become plain
// numbers so the sheet can sum them.
func RowOf(tab string, rec any) (Row, error) {
	row := Row{Tab: tab}
	switch r := rec.(type) {
	case core.BuildingExpense:
		row.Header, row.ID = buildingExpenseHeader, r.ID
		row.Values = []any{r.Item, num(r.Cost), r.Year.String(), r.Month.String(), r.Date.String(), r.Notes, len(r.Images)}
	case core.DailyAccount:
		row.Header, row.ID = dailyAccountHeader, r.ID
		row.Values = []any{r.Number, r.Week, r.Purpose, r.CheckNumber, num(r.Amount), r.Date.String(), r.DayOfWeek, r.Notes, len(r.ReceiptImages)}
	case core.Installment:
		row.Header, row.ID = installmentHeader, r.ID
		row.Values = []any{r.FullName, r.Grade, r.InstallmentType, r.Year.String(), num(r.AnnualAmount)}
		for _, p := range r.Parts() {
			row.Values = append(row.Values, num(p))
		}
		row.Values = append(row.Values, num(r.TotalReceived()), num(r.Remaining()), r.Notes)
	case core.PayrollEntry:
		row.Header, row.ID = payrollHeader, r.ID
		row.Values = []any{r.EmployeeName, num(r.Salary), num(r.Absence), num(r.Deduction), num(r.Bonus), num(r.Total()),
			r.Month.String(), r.Year.String(), r.Notes}
	case core.SupervisionEntry:
		row.Header, row.ID = supervisionHeader, r.ID
		row.Values = []any{r.TeacherName, r.Subject, r.TeacherDepartment, r.TeacherGrade, r.TeacherViolationType, r.TeacherPunishmentType,
			r.StudentName, r.StudentDepartment, r.StudentGrade, r.StudentViolationType, r.StudentPunishmentType, r.Date.String(), r.Notes}
	case core.Teacher:
		row.Header, row.ID = teacherHeader, r.ID
		row.Values = []any{r.FullName, r.BirthYear.String(), r.Certificate, r.JobTitle, r.Specialist, r.GraduationDate.String(),
			r.StartDate.String(), r.PreviousInstitution, r.BloodType, r.Notes, len(r.CertificateImages)}
	case core.KitchenExpense:
		row.Header, row.ID = kitchenExpenseHeader, r.ID
		row.Values = []any{r.Item, num(r.Cost), r.Purpose, r.Year.String(), r.Month.String(), r.Date.String(), r.Notes, len(r.ReceiptImages)}
	case core.MonthlyExpense:
		row.Header, row.ID = monthlyExpenseHeader, r.ID
		row.Values = []any{r.Year.String(), r.Month.String(), num(r.StaffSalary), num(r.Expenses), num(r.BuildingRent),
			num(r.DramaFee), num(r.SocialSupport), num(r.Electricity), num(r.Total()), r.Requirement, r.Notes, len(r.ReceiptImages)}
	case core.CalendarEntry:
		row.Header, row.ID = calendarHeader, r.ID
		row.Values = []any{r.Year.String(), r.Month.String()}
		for _, w := range r.Weeks() {
			row.Values = append(row.Values, strings.Join(w, " | "))
		}
		row.Values = append(row.Values, strings.Join(r.Abbreviations(), ", "), r.Notes)
	default:
		return Row{}, fmt.Errorf("no sheet layout for %T", rec)
	}
	row.Header = append([]string{"ID"}, row.Header...)
	return row, nil
}

func num(m core.Money) float64 { return m.Float64() }
