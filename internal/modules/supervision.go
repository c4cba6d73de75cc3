package modules

import (
	"berdoz/internal/core"
	"berdoz/internal/favm"
)

const (
	TeacherCases = "teacherCases"
	StudentCases = "studentCases"
)

func SupervisionEntry() favm.Module[core.SupervisionEntry] {
	return favm.Module[core.SupervisionEntry]{
		Name:       Supervision,
		Endpoint:   Endpoint(Supervision),
		TempPrefix: "supervision-",
		Fields: []favm.WeightedField[core.SupervisionEntry]{
			field("teacherName", 1, func(s core.SupervisionEntry) string { return s.TeacherName }),
			field("studentName", 1, func(s core.SupervisionEntry) string { return s.StudentName }),
			field("subject", 0.7, func(s core.SupervisionEntry) string { return s.Subject }),
			field("teacherDepartment", 0.6, func(s core.SupervisionEntry) string { return s.TeacherDepartment }),
			field("notes", 0.4, func(s core.SupervisionEntry) string { return s.Notes }),
		},
		Searchable: func(s core.SupervisionEntry) string {
			var b favm.ContentBuilder
			return b.Text(
				s.TeacherGrade, s.TeacherViolationType, s.TeacherPunishmentType,
				s.StudentDepartment, s.StudentGrade, s.StudentViolationType, s.StudentPunishmentType,
			).Date(s.Date).String()
		},
		Totals: favm.Totals[core.SupervisionEntry]{
			Primitives: []favm.Primitive[core.SupervisionEntry]{
				{Name: TeacherCases, Field: favm.Count(core.SupervisionEntry.HasTeacherCase)},
				{Name: StudentCases, Field: favm.Count(core.SupervisionEntry.HasStudentCase)},
			},
		},
	}
}
