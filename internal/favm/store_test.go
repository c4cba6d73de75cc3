package favm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berdoz/internal/core"
)

func loaded(t *testing.T, recs ...core.PayrollEntry) *Store[core.PayrollEntry] {
	t.Helper()
	s := NewStore[core.PayrollEntry]("payroll")
	require.NoError(t, s.Load(context.Background(), func(context.Context) ([]core.PayrollEntry, error) {
		return recs, nil
	}))
	return s
}

func ids(recs []core.PayrollEntry) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestStore_LoadDeduplicates(t *testing.T) {
	s := loaded(t, payroll("a", "x", "", "", 1), payroll("b", "y", "", "", 2), payroll("a", "z", "", "", 3))

	assert.Equal(t, []string{"a", "b"}, ids(s.Snapshot()))
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "x", got.EmployeeName)
}

func TestStore_LoadFailureKeepsSnapshot(t *testing.T) {
	s := loaded(t, payroll("a", "x", "", "", 1))
	boom := errors.New("connection refused")

	err := s.Load(context.Background(), func(context.Context) ([]core.PayrollEntry, error) {
		return nil, boom
	})

	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "payroll", lerr.Module)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, ids(s.Snapshot()))
}

func TestStore_UpsertTwiceKeepsLengthAndFront(t *testing.T) {
	s := loaded(t, payroll("a", "", "", "", 1), payroll("b", "", "", "", 2), payroll("c", "", "", "", 3))
	before := s.Len()

	s.Upsert(payroll("b", "first", "", "", 20))
	s.Upsert(payroll("b", "second", "", "", 21))

	assert.Equal(t, before, s.Len())
	snap := s.Snapshot()
	assert.Equal(t, []string{"b", "a", "c"}, ids(snap))
	assert.Equal(t, "second", snap[0].EmployeeName)
}

func TestStore_UpsertNewPrepends(t *testing.T) {
	s := loaded(t, payroll("a", "", "", "", 1))
	s.Upsert(payroll("z", "", "", "", 1))
	assert.Equal(t, []string{"z", "a"}, ids(s.Snapshot()))
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	s := loaded(t, payroll("a", "", "", "", 1), payroll("b", "", "", "", 2))

	assert.False(t, s.Remove("missing"))
	assert.Equal(t, []string{"a", "b"}, ids(s.Snapshot()))

	assert.True(t, s.Remove("a"))
	assert.Equal(t, []string{"b"}, ids(s.Snapshot()))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := loaded(t, payroll("a", "x", "", "", 1))
	snap := s.Snapshot()
	snap[0].EmployeeName = "changed"

	got, _ := s.Get("a")
	assert.Equal(t, "x", got.EmployeeName)
}
