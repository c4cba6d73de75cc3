package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berdoz/internal/sheets"
)

func TestStore_UpsertReplacesById(t *testing.T) {
	ctx := context.Background()
	s := New()
	row := sheets.Row{Tab: "payroll", Header: []string{"ID", "Employee"}, ID: "a", Values: []any{"Aram"}}

	ref, err := s.Upsert(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, "mem:payroll:2", ref)

	_, err = s.Upsert(ctx, sheets.Row{Tab: "payroll", ID: "b", Values: []any{"Bana"}})
	require.NoError(t, err)

	row.Values = []any{"Aram Kamal"}
	ref, err = s.Upsert(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, "mem:payroll:2", ref)

	assert.Equal(t, [][]any{{"a", "Aram Kamal"}, {"b", "Bana"}}, s.Rows("payroll"))
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.Upsert(ctx, sheets.Row{Tab: "teachers", ID: "a", Values: []any{"x"}})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "teachers", "a"))
	require.NoError(t, s.Delete(ctx, "teachers", "missing"))
	require.NoError(t, s.Delete(ctx, "nope", "a"))
	assert.Empty(t, s.Rows("teachers"))
}
