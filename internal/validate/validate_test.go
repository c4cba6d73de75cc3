package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berdoz/internal/core"
)

func TestStruct_Valid(t *testing.T) {
	v := New()
	err := v.Struct(core.BuildingExpense{Item: "paint", Cost: core.NewMoney(250000), Year: "2025", Month: "3"})
	assert.NoError(t, err)
}

func TestStruct_BlankRequiredField(t *testing.T) {
	v := New()
	err := v.Struct(core.BuildingExpense{Item: "   ", Cost: core.NewMoney(1)})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "item is required", verr.Fields["item"])
	assert.True(t, IsValidationError(err))
}

func TestStruct_NegativeAmount(t *testing.T) {
	v := New()
	err := v.Struct(core.PayrollEntry{EmployeeName: "Dilan", Salary: core.NewMoney(-1)})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "salary")
	assert.NotContains(t, verr.Fields, "employeeName")
}

func TestStruct_NonNumericPeriod(t *testing.T) {
	v := New()
	err := v.Struct(core.PayrollEntry{EmployeeName: "Dilan", Month: "March"})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "month")
}

func TestStruct_SupervisionNeedsOneCase(t *testing.T) {
	v := New()

	err := v.Struct(core.SupervisionEntry{})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "studentName")

	assert.NoError(t, v.Struct(core.SupervisionEntry{TeacherName: "Karwan"}))
	assert.NoError(t, v.Struct(core.SupervisionEntry{StudentName: "Rezan"}))
}

func TestStruct_BloodType(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(core.Teacher{FullName: "Hana", BloodType: "AB+"}))
	assert.NoError(t, v.Struct(core.Teacher{FullName: "Hana"}))

	err := v.Struct(core.Teacher{FullName: "Hana", BloodType: "C"})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "bloodType")
}

func TestStruct_NotAStruct(t *testing.T) {
	err := New().Struct(42)
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}

func TestErrorMessageIsStable(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "validation failed: a: one; b: two", err.Error())
}
