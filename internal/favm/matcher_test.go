package favm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"berdoz/internal/core"
)

func TestApproxDistance(t *testing.T) {
	cases := []struct {
		pattern, text string
		want          int
	}{
		{"ahmed", "ahmed karim", 0},
		{"karim", "ahmed karim", 0},
		{"ahmad", "ahmed karim", 1},
		{"krim", "ahmed karim", 1},
		{"xyz", "", 3},
		{"", "anything", 0},
		{"ئاب", "مانگی ئاب", 0},
	}
	for _, tc := range cases {
		if got := approxDistance([]rune(tc.pattern), []rune(tc.text)); got != tc.want {
			t.Errorf("approxDistance(%q, %q) = %d, want %d", tc.pattern, tc.text, got, tc.want)
		}
	}
}

func sample() []core.PayrollEntry {
	return []core.PayrollEntry{
		payroll("1", "Ahmed Karim", "2025", "1", 1200000),
		payroll("2", "Shilan Omar", "2025", "2", 900000),
		payroll("3", "Karwan Aziz", "2024", "12", 450000),
	}
}

func TestMatch_EmptyQueryReturnsInput(t *testing.T) {
	m := payrollModule().Matcher()
	in := sample()

	for _, q := range []string{"", "   ", "a", "a b"} {
		assert.Equal(t, ids(in), ids(m.Match(in, q)), "query %q", q)
	}
}

func TestMatch_ExactSubstringAlwaysIncluded(t *testing.T) {
	m := payrollModule().Matcher()
	in := sample()
	in[2].Notes = "transferred from the morning shift"

	// notes has a lower weight than the name
	got := m.Match(in, "morning shift")
	assert.Equal(t, []string{"3"}, ids(got))

	got = m.Match(in, "OMAR")
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestMatch_ToleratesTypos(t *testing.T) {
	m := payrollModule().Matcher()
	got := m.Match(sample(), "ahmad")
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestMatch_AllTokensMustMatch(t *testing.T) {
	m := payrollModule().Matcher()
	assert.Equal(t, []string{"3"}, ids(m.Match(sample(), "karwan aziz")))
	assert.Empty(t, m.Match(sample(), "karwan zzzzzz"))
}

func TestMatch_SearchableContent(t *testing.T) {
	m := payrollModule().Matcher()

	// thousands-separated salary
	assert.Equal(t, []string{"1"}, ids(m.Match(sample(), "1,200,000")))
	// month name from the period
	assert.Equal(t, []string{"3"}, ids(m.Match(sample(), "december")))
}

func TestMatch_NameHitsRankBeforeContentHits(t *testing.T) {
	m := payrollModule().Matcher()
	in := []core.PayrollEntry{
		payroll("notes", "Someone", "", "", 0),
		payroll("name", "Rebwar", "", "", 0),
	}
	in[0].Notes = "covering for rebwar"

	assert.Equal(t, []string{"name", "notes"}, ids(m.Match(in, "rebwar")))
}

func TestMatch_NoMatchesIsEmptyNotNil(t *testing.T) {
	got := payrollModule().Matcher().Match(sample(), "qqqqqq")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatch_DoesNotModifyInput(t *testing.T) {
	in := sample()
	_ = payrollModule().Matcher().Match(in, "karwan")
	assert.Equal(t, []string{"1", "2", "3"}, ids(in))
}

func TestNewMatcher_ZeroThresholdIsExact(t *testing.T) {
	m := NewMatcher(payrollModule().SearchFields(), Options{Threshold: 0})
	assert.Empty(t, m.Match(sample(), "ahmd"))
	assert.Equal(t, []string{"1"}, ids(m.Match(sample(), "ahmed")))

	m = NewMatcher(payrollModule().SearchFields(), Options{Threshold: -1})
	assert.Equal(t, []string{"1"}, ids(m.Match(sample(), "ahmd")))
}
