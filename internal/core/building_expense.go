package core

import (
	"strconv"
	"time"
)

// BuildingExpense is a maintenance or construction cost of the school building.
type BuildingExpense struct {
	Meta
	Item   string      `json:"item" db:"item" validate:"notblank,max=200"`
	Cost   Money       `json:"cost" db:"cost" validate:"gte=0"`
	Year   PeriodPart  `json:"year" db:"year" validate:"omitempty,numeric"`
	Month  PeriodPart  `json:"month" db:"month" validate:"omitempty,numeric"`
	Date   Date        `json:"date" db:"date"`
	Notes  string      `json:"notes" db:"notes" validate:"max=2000"`
	Images Attachments `json:"images" db:"images"`
}

func (e BuildingExpense) WithMeta(m Meta) BuildingExpense {
	e.Meta = m
	return e
}

// WithDefaults fills the current year, January, today's date and an empty
// image list when they are missing.
func (e BuildingExpense) WithDefaults(now time.Time) BuildingExpense {
	if e.Year == "" {
		e.Year = PeriodPart(strconv.Itoa(now.Year()))
	}
	if e.Month == "" {
		e.Month = "1"
	}
	if e.Date.IsZero() {
		e.Date = NewDate(now.Year(), int(now.Month()), now.Day())
	}
	if e.Images == nil {
		e.Images = Attachments{}
	}
	return e
}

func (e BuildingExpense) Period() (PeriodPart, PeriodPart) {
	return e.Year, e.Month
}
