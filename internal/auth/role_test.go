package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFromID(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleFromID(1))
	assert.Equal(t, RoleEmployee, RoleFromID(2))
	assert.Equal(t, RoleClient, RoleFromID(3))
	assert.Equal(t, RoleUnknown, RoleFromID(0))
	assert.Equal(t, RoleUnknown, RoleFromID(4))
	assert.Equal(t, RoleUnknown, RoleFromID(255))
}

func TestRoleFromName(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleFromName("ADMIN"))
	assert.Equal(t, RoleEmployee, RoleFromName("EMPLOYEE"))
	assert.Equal(t, RoleClient, RoleFromName("CLIENT"))
	assert.Equal(t, RoleUnknown, RoleFromName("admin"))
	assert.Equal(t, RoleUnknown, RoleFromName("OWNER"))
	assert.Equal(t, RoleUnknown, RoleFromName(""))
}

func TestStaffAndClientAreDisjoint(t *testing.T) {
	cases := []struct {
		role    Role
		staff   bool
		client  bool
	}{
		{RoleAdmin, true, false},
		{RoleEmployee, true, false},
		{RoleClient, false, true},
		{RoleUnknown, false, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.staff, tc.role.IsStaff(), "IsStaff(%q)", tc.role)
		assert.Equal(t, tc.client, tc.role.IsClient(), "IsClient(%q)", tc.role)
	}
}

// A missing identity carries no role at all; both predicates must be
// false for the zero value so that "not logged in" is a plain
// rejection, never a special case.
func TestZeroRoleIsNeverAuthorized(t *testing.T) {
	var r Role
	assert.False(t, r.IsStaff())
	assert.False(t, r.IsClient())
}
