package core

import (
	"strconv"
	"time"
)

// KitchenExpense is a purchase for the school kitchen.
type KitchenExpense struct {
	Meta
	Item          string      `json:"item" db:"item" validate:"notblank,max=200"`
	Cost          Money       `json:"cost" db:"cost" validate:"gte=0"`
	Purpose       string      `json:"purpose" db:"purpose" validate:"max=500"`
	Year          PeriodPart  `json:"year" db:"year" validate:"omitempty,numeric"`
	Month         PeriodPart  `json:"month" db:"month" validate:"omitempty,numeric"`
	Date          Date        `json:"date" db:"date"`
	ReceiptImages Attachments `json:"receiptImages" db:"receipt_images"`
	Notes         string      `json:"notes" db:"notes" validate:"max=2000"`
}

func (e KitchenExpense) WithMeta(m Meta) KitchenExpense {
	e.Meta = m
	return e
}

// WithDefaults dates the purchase today when undated. The year always
// follows the date; the month does when it is missing.
func (e KitchenExpense) WithDefaults(now time.Time) KitchenExpense {
	if e.Date.IsZero() {
		e.Date = NewDate(now.Year(), int(now.Month()), now.Day())
	}
	e.Year = PeriodPart(strconv.Itoa(e.Date.Year()))
	if e.Month == "" {
		e.Month = PeriodPart(strconv.Itoa(int(e.Date.Time.Month())))
	}
	if e.ReceiptImages == nil {
		e.ReceiptImages = Attachments{}
	}
	return e
}

func (e KitchenExpense) Period() (PeriodPart, PeriodPart) {
	return e.Year, e.Month
}
