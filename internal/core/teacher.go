package core

import (
	"strconv"
	"time"
)

// Teacher is a staff record with qualifications and scanned certificates.
type Teacher struct {
	Meta
	FullName            string      `json:"fullName" db:"full_name" validate:"notblank,max=200"`
	BirthYear           PeriodPart  `json:"birthYear" db:"birth_year" validate:"omitempty,numeric"`
	Certificate         string      `json:"certificate" db:"certificate" validate:"max=200"`
	JobTitle            string      `json:"jobTitle" db:"job_title" validate:"max=200"`
	Specialist          string      `json:"specialist" db:"specialist" validate:"max=200"`
	GraduationDate      Date        `json:"graduationDate" db:"graduation_date"`
	StartDate           Date        `json:"startDate" db:"start_date"`
	PreviousInstitution string      `json:"previousInstitution" db:"previous_institution" validate:"max=200"`
	BloodType           string      `json:"bloodType" db:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	CertificateImages   Attachments `json:"certificateImages" db:"certificate_images"`
	Notes               string      `json:"notes" db:"notes" validate:"max=2000"`
}

func (t Teacher) WithMeta(m Meta) Teacher {
	t.Meta = m
	return t
}

func (t Teacher) WithDefaults(_ time.Time) Teacher {
	if t.CertificateImages == nil {
		t.CertificateImages = Attachments{}
	}
	return t
}

// Period is the start of employment.
func (t Teacher) Period() (PeriodPart, PeriodPart) {
	if t.StartDate.IsZero() {
		return "", ""
	}
	return PeriodPart(strconv.Itoa(t.StartDate.Year())), PeriodPart(strconv.Itoa(int(t.StartDate.Time.Month())))
}
