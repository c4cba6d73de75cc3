package core

import (
	"encoding/json"
	"strconv"
	"time"
)

// Installment tracks the yearly tuition of one student paid in up to six parts.
type Installment struct {
	Meta
	FullName          string      `json:"fullName" db:"full_name" validate:"notblank,max=200"`
	Grade             string      `json:"grade" db:"grade" validate:"max=100"`
	InstallmentType   string      `json:"installmentType" db:"installment_type" validate:"max=100"`
	Year              PeriodPart  `json:"year" db:"year" validate:"omitempty,numeric"`
	AnnualAmount      Money       `json:"annualAmount" db:"annual_amount" validate:"gte=0"`
	FirstInstallment  Money       `json:"firstInstallment" db:"first_installment" validate:"gte=0"`
	SecondInstallment Money       `json:"secondInstallment" db:"second_installment" validate:"gte=0"`
	ThirdInstallment  Money       `json:"thirdInstallment" db:"third_installment" validate:"gte=0"`
	FourthInstallment Money       `json:"fourthInstallment" db:"fourth_installment" validate:"gte=0"`
	FifthInstallment  Money       `json:"fifthInstallment" db:"fifth_installment" validate:"gte=0"`
	SixthInstallment  Money       `json:"sixthInstallment" db:"sixth_installment" validate:"gte=0"`
	ReceiptImages     Attachments `json:"receiptImages" db:"receipt_images"`
	Notes             string      `json:"notes" db:"notes" validate:"max=2000"`
}

func (i Installment) WithMeta(m Meta) Installment {
	i.Meta = m
	return i
}

func (i Installment) WithDefaults(now time.Time) Installment {
	if i.Year == "" {
		i.Year = PeriodPart(strconv.Itoa(now.Year()))
	}
	if i.ReceiptImages == nil {
		i.ReceiptImages = Attachments{}
	}
	return i
}

// Installments never filter by month.
func (i Installment) Period() (PeriodPart, PeriodPart) {
	return i.Year, ""
}

// Parts returns the six installment amounts in order.
func (i Installment) Parts() [6]Money {
	return [6]Money{
		i.FirstInstallment, i.SecondInstallment, i.ThirdInstallment,
		i.FourthInstallment, i.FifthInstallment, i.SixthInstallment,
	}
}

// TotalReceived is the sum of the six installments.
func (i Installment) TotalReceived() Money {
	total := Zero
	for _, p := range i.Parts() {
		total = total.Add(p)
	}
	return total
}

// Remaining is the annual amount minus what has been received.
func (i Installment) Remaining() Money {
	return i.AnnualAmount.Sub(i.TotalReceived())
}

// MarshalJSON adds the derived totals to the stored fields.
func (i Installment) MarshalJSON() ([]byte, error) {
	type stored Installment
	return json.Marshal(struct {
		stored
		TotalReceived Money `json:"totalReceived"`
		Remaining     Money `json:"remaining"`
	}{stored(i), i.TotalReceived(), i.Remaining()})
}
