// Package auth defines the closed role type and the pure
// authorization predicates gating every mutating operation. The
// storage layer identifies roles by small integer codes; those codes
// are converted to a Role exactly once, at the edge, so the rest of
// the service never compares raw integers.
package auth

// Role is the closed set of roles known to the service.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleClient   Role = "CLIENT"
	// RoleUnknown is the zero value for anything the store hands us
	// that we do not recognise. Both predicates are false for it.
	RoleUnknown Role = ""
)

// Storage-level role codes as seeded in the roles table.
const (
	RoleIDAdmin    uint8 = 1
	RoleIDEmployee uint8 = 2
	RoleIDClient   uint8 = 3
)

// RoleFromID converts a storage role code into a Role. Unrecognised
// codes map to RoleUnknown rather than an error: an unknown role is
// simply never authorized.
func RoleFromID(id uint8) Role {
	switch id {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDEmployee:
		return RoleEmployee
	case RoleIDClient:
		return RoleClient
	}
	return RoleUnknown
}

// RoleFromName parses a role claim string (as carried in JWTs) back
// into a Role. Unknown strings map to RoleUnknown.
func RoleFromName(name string) Role {
	switch Role(name) {
	case RoleAdmin, RoleEmployee, RoleClient:
		return Role(name)
	}
	return RoleUnknown
}

// IsStaff reports whether the role may manage the catalog and other
// users' reservations. Admin and Employee are collectively "staff".
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// IsClient reports whether the role may place reservations.
func (r Role) IsClient() bool {
	return r == RoleClient
}
