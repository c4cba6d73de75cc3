package core

import (
	"strconv"
	"strings"
	"time"
)

// SupervisionEntry records a disciplinary case for a teacher, a student or
// both.
type SupervisionEntry struct {
	Meta
	TeacherName           string `json:"teacherName" db:"teacher_name" validate:"max=200"`
	Subject               string `json:"subject" db:"subject" validate:"max=200"`
	TeacherDepartment     string `json:"teacherDepartment" db:"teacher_department"`
	TeacherGrade          string `json:"teacherGrade" db:"teacher_grade"`
	TeacherViolationType  string `json:"teacherViolationType" db:"teacher_violation_type"`
	TeacherPunishmentType string `json:"teacherPunishmentType" db:"teacher_punishment_type"`
	StudentName           string `json:"studentName" db:"student_name" validate:"required_without=TeacherName,max=200"`
	StudentDepartment     string `json:"studentDepartment" db:"student_department"`
	StudentGrade          string `json:"studentGrade" db:"student_grade"`
	StudentViolationType  string `json:"studentViolationType" db:"student_violation_type"`
	StudentPunishmentType string `json:"studentPunishmentType" db:"student_punishment_type"`
	Date                  Date   `json:"date" db:"date"`
	Notes                 string `json:"notes" db:"notes" validate:"max=2000"`
}

func (s SupervisionEntry) WithMeta(m Meta) SupervisionEntry {
	s.Meta = m
	return s
}

func (s SupervisionEntry) WithDefaults(now time.Time) SupervisionEntry {
	if s.Date.IsZero() {
		s.Date = NewDate(now.Year(), int(now.Month()), now.Day())
	}
	return s
}

func (s SupervisionEntry) Period() (PeriodPart, PeriodPart) {
	if s.Date.IsZero() {
		return "", ""
	}
	return PeriodPart(strconv.Itoa(s.Date.Year())), PeriodPart(strconv.Itoa(int(s.Date.Time.Month())))
}

// HasTeacherCase reports whether the entry concerns a teacher.
func (s SupervisionEntry) HasTeacherCase() bool {
	return strings.TrimSpace(s.TeacherName) != ""
}

// HasStudentCase reports whether the entry concerns a student.
func (s SupervisionEntry) HasStudentCase() bool {
	return strings.TrimSpace(s.StudentName) != ""
}
