package core

import (
	"strconv"
	"time"
)

// DailyAccount is one line of the daily cash book.
type DailyAccount struct {
	Meta
	Number        int         `json:"number" db:"number" validate:"gte=0"`
	Week          string      `json:"week" db:"week" validate:"max=100"`
	Purpose       string      `json:"purpose" db:"purpose" validate:"notblank,max=500"`
	CheckNumber   string      `json:"checkNumber" db:"check_number" validate:"max=100"`
	Amount        Money       `json:"amount" db:"amount" validate:"gte=0"`
	Date          Date        `json:"date" db:"date"`
	DayOfWeek     string      `json:"dayOfWeek" db:"day_of_week"`
	ReceiptImages Attachments `json:"receiptImages" db:"receipt_images"`
	Notes         string      `json:"notes" db:"notes" validate:"max=2000"`
}

func (a DailyAccount) WithMeta(m Meta) DailyAccount {
	a.Meta = m
	return a
}

// WithDefaults derives the weekday name from the date when it is missing.
func (a DailyAccount) WithDefaults(_ time.Time) DailyAccount {
	if a.DayOfWeek == "" && !a.Date.IsZero() {
		a.DayOfWeek = DayNameKu(a.Date.Weekday())
	}
	if a.ReceiptImages == nil {
		a.ReceiptImages = Attachments{}
	}
	return a
}

func (a DailyAccount) Period() (PeriodPart, PeriodPart) {
	if a.Date.IsZero() {
		return "", ""
	}
	return PeriodPart(strconv.Itoa(a.Date.Year())), PeriodPart(strconv.Itoa(int(a.Date.Time.Month())))
}
