package core

import (
	"encoding/json"
	"strconv"
	"time"
)

// MonthlyExpense is the school's running cost sheet for one month.
type MonthlyExpense struct {
	Meta
	Year          PeriodPart  `json:"year" db:"year" validate:"omitempty,numeric"`
	Month         PeriodPart  `json:"month" db:"month" validate:"omitempty,numeric"`
	StaffSalary   Money       `json:"staffSalary" db:"staff_salary" validate:"gte=0"`
	Expenses      Money       `json:"expenses" db:"expenses" validate:"gte=0"`
	BuildingRent  Money       `json:"buildingRent" db:"building_rent" validate:"gte=0"`
	DramaFee      Money       `json:"dramaFee" db:"drama_fee" validate:"gte=0"`
	SocialSupport Money       `json:"socialSupport" db:"social_support" validate:"gte=0"`
	Electricity   Money       `json:"electricity" db:"electricity" validate:"gte=0"`
	Requirement   string      `json:"requirement" db:"requirement" validate:"max=500"`
	ReceiptImages Attachments `json:"receiptImages" db:"receipt_images"`
	Notes         string      `json:"notes" db:"notes" validate:"max=2000"`
}

func (e MonthlyExpense) WithMeta(m Meta) MonthlyExpense {
	e.Meta = m
	return e
}

func (e MonthlyExpense) WithDefaults(now time.Time) MonthlyExpense {
	if e.Year == "" {
		e.Year = PeriodPart(strconv.Itoa(now.Year()))
	}
	if e.Month == "" {
		e.Month = "1"
	}
	if e.ReceiptImages == nil {
		e.ReceiptImages = Attachments{}
	}
	return e
}

func (e MonthlyExpense) Period() (PeriodPart, PeriodPart) {
	return e.Year, e.Month
}

// Total is the sum of the six cost columns.
func (e MonthlyExpense) Total() Money {
	return e.StaffSalary.Add(e.Expenses).Add(e.BuildingRent).
		Add(e.DramaFee).Add(e.SocialSupport).Add(e.Electricity)
}

// MarshalJSON adds the derived total to the stored fields.
func (e MonthlyExpense) MarshalJSON() ([]byte, error) {
	type stored MonthlyExpense
	return json.Marshal(struct {
		stored
		Total Money `json:"total"`
	}{stored(e), e.Total()})
}
