package domain

import "strings" // String normalization

// Role is the closed set of dashboard roles
type Role string

const (
	RoleAdmin  Role = "admin"  // Full access, manages writers and news status
	RoleWriter Role = "writer" // Authors news, sees only their own records
)

// ParseRole normalizes and validates a role string
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleWriter:
		return RoleWriter, true
	}
	return "", false
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleWriter
}

// Identity is the authenticated subject decoded from a verified token
type Identity struct {
	ID   string // User ID
	Role Role   // Role claim
}

// IsAdmin reports whether the identity carries the admin role
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
