package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGates(t *testing.T) {
	gates, err := ParseGates(" payroll:admin:s3cr:et , ,installments:acc:pw")
	require.NoError(t, err)
	assert.Equal(t, []Gate{
		{Module: "payroll", User: "admin", Password: "s3cr:et"},
		{Module: "installments", User: "acc", Password: "pw"},
	}, gates)

	gates, err = ParseGates("")
	require.NoError(t, err)
	assert.Empty(t, gates)

	_, err = ParseGates("payroll:admin")
	assert.Error(t, err)
}

func TestSession_UnlockAndLock(t *testing.T) {
	s := New([]Gate{{Module: "payroll", User: "admin", Password: "pw"}})

	assert.True(t, s.Unlocked("teachers"), "ungated modules are open")
	assert.False(t, s.Unlocked("payroll"))

	assert.ErrorIs(t, s.Unlock("payroll", "admin", "nope"), ErrBadCredentials)
	assert.False(t, s.Unlocked("payroll"))

	require.NoError(t, s.Unlock("payroll", "admin", "pw"))
	assert.True(t, s.Unlocked("payroll"))

	s.Lock("payroll")
	assert.False(t, s.Unlocked("payroll"))

	require.NoError(t, s.Unlock("payroll", "admin", "pw"))
	s.LockAll()
	assert.False(t, s.Unlocked("payroll"))
}

func TestSessionsAreIndependent(t *testing.T) {
	gates := []Gate{{Module: "payroll", User: "a", Password: "b"}}
	one, two := New(gates), New(gates)

	require.NoError(t, one.Unlock("payroll", "a", "b"))
	assert.True(t, one.Unlocked("payroll"))
	assert.False(t, two.Unlocked("payroll"))
}
