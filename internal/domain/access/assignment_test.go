package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestNewRoleAssignment(t *testing.T) {
	a, err := NewRoleAssignment(10, 2, 1, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, uint(10), a.UserID())
	assert.Equal(t, uint(2), a.RoleID())
	assert.Equal(t, uint(1), a.GrantedBy())
	assert.Nil(t, a.OrganizationID())
	assert.Nil(t, a.ExpiresAt())
	assert.False(t, a.GrantedAt().IsZero())
}

func TestNewRoleAssignment_PastExpiry(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	_, err := NewRoleAssignment(10, 2, 1, nil, &past)
	assert.Error(t, err)
}

func TestRoleAssignment_Active(t *testing.T) {
	now := time.Now().UTC()

	permanent, err := NewRoleAssignment(10, 2, 1, nil, nil)
	require.NoError(t, err)
	assert.True(t, permanent.Active(now))

	future := now.Add(24 * time.Hour)
	temporary, err := NewRoleAssignment(10, 2, 1, nil, &future)
	require.NoError(t, err)
	assert.True(t, temporary.Active(now))
	// Past the expiry the grant no longer counts.
	assert.False(t, temporary.Active(now.Add(48*time.Hour)))
	// Expiry instant itself is inactive.
	assert.False(t, temporary.Active(future))
}

func TestRoleAssignment_AppliesTo(t *testing.T) {
	global, err := NewRoleAssignment(10, 2, 1, nil, nil)
	require.NoError(t, err)
	scoped, err := NewRoleAssignment(10, 2, 1, uintPtr(5), nil)
	require.NoError(t, err)

	assert.True(t, global.AppliesTo(nil))
	assert.True(t, global.AppliesTo(uintPtr(5)))
	assert.True(t, global.AppliesTo(uintPtr(9)))

	assert.True(t, scoped.AppliesTo(uintPtr(5)))
	assert.False(t, scoped.AppliesTo(uintPtr(9)))
	assert.False(t, scoped.AppliesTo(nil))
}

func TestRoleAssignment_Extend(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour)
	a, err := NewRoleAssignment(10, 2, 1, nil, &future)
	require.NoError(t, err)

	later := future.Add(24 * time.Hour)
	require.NoError(t, a.Extend(&later))
	assert.Equal(t, later, *a.ExpiresAt())

	require.NoError(t, a.Extend(nil))
	assert.Nil(t, a.ExpiresAt())

	past := time.Now().UTC().Add(-time.Minute)
	assert.Error(t, a.Extend(&past))
}

func TestPermission_Code(t *testing.T) {
	p, err := NewPermission("rental", "approve")
	require.NoError(t, err)
	assert.Equal(t, "rental:approve", p.Code())
}

func TestSplitCode(t *testing.T) {
	resource, action, err := SplitCode("timesheet:verify")
	require.NoError(t, err)
	assert.Equal(t, "timesheet", resource)
	assert.Equal(t, "verify", action)

	_, _, err = SplitCode("noseparator")
	assert.Error(t, err)
	_, _, err = SplitCode(":action")
	assert.Error(t, err)
}

func TestNewRole(t *testing.T) {
	r, err := NewRole("ops_manager", "Operations Manager", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, r.RoleLevel())
	assert.False(t, r.IsSystem())

	_, err = NewRole("", "x", 1)
	assert.Error(t, err)
	_, err = NewRole("x", "y", -1)
	assert.Error(t, err)
}
