package modules

import (
	"berdoz/internal/core"
	"berdoz/internal/favm"
)

func Teacher() favm.Module[core.Teacher] {
	return favm.Module[core.Teacher]{
		Name:       Teachers,
		Endpoint:   Endpoint(Teachers),
		TempPrefix: "teacher-",
		Fields: []favm.WeightedField[core.Teacher]{
			field("fullName", 1, func(t core.Teacher) string { return t.FullName }),
			field("specialist", 0.7, func(t core.Teacher) string { return t.Specialist }),
			field("jobTitle", 0.7, func(t core.Teacher) string { return t.JobTitle }),
			field("certificate", 0.5, func(t core.Teacher) string { return t.Certificate }),
			field("notes", 0.4, func(t core.Teacher) string { return t.Notes }),
		},
		Searchable: func(t core.Teacher) string {
			var b favm.ContentBuilder
			return b.Text(t.BirthYear.String(), t.PreviousInstitution, t.BloodType).
				Date(t.GraduationDate).Date(t.StartDate).String()
		},
		// teachers have no amounts; the view count is the headline
		Totals: favm.Totals[core.Teacher]{},
	}
}
