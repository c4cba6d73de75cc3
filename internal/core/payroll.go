package core

import (
	"encoding/json"
	"strconv"
	"time"
)

// PayrollEntry is one employee's salary line for a month.
type PayrollEntry struct {
	Meta
	EmployeeName string     `json:"employeeName" db:"employee_name" validate:"notblank,max=200"`
	Salary       Money      `json:"salary" db:"salary" validate:"gte=0"`
	Absence      Money      `json:"absence" db:"absence" validate:"gte=0"`
	Deduction    Money      `json:"deduction" db:"deduction" validate:"gte=0"`
	Bonus        Money      `json:"bonus" db:"bonus" validate:"gte=0"`
	Month        PeriodPart `json:"month" db:"month" validate:"omitempty,numeric"`
	Year         PeriodPart `json:"year" db:"year" validate:"omitempty,numeric"`
	Notes        string     `json:"notes" db:"notes" validate:"max=2000"`
}

func (p PayrollEntry) WithMeta(m Meta) PayrollEntry {
	p.Meta = m
	return p
}

func (p PayrollEntry) WithDefaults(now time.Time) PayrollEntry {
	if p.Year == "" {
		p.Year = PeriodPart(strconv.Itoa(now.Year()))
	}
	if p.Month == "" {
		p.Month = PeriodPart(strconv.Itoa(int(now.Month())))
	}
	return p
}

func (p PayrollEntry) Period() (PeriodPart, PeriodPart) {
	return p.Year, p.Month
}

// Total is salary - absence - deduction + bonus.
func (p PayrollEntry) Total() Money {
	return p.Salary.Sub(p.Absence).Sub(p.Deduction).Add(p.Bonus)
}

// MarshalJSON adds the derived total to the stored fields.
func (p PayrollEntry) MarshalJSON() ([]byte, error) {
	type stored PayrollEntry
	return json.Marshal(struct {
		stored
		Total Money `json:"total"`
	}{stored(p), p.Total()})
}
