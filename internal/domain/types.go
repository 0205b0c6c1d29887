package domain

import "strings"

// ID is used across domain entities.
type ID int64

// Role mirrors the identity service's grant set.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole normalizes a role string coming from token claims.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer, true
	case RoleEmployee:
		return RoleEmployee, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Actor is the authenticated principal acting on a request. The transport layer
// resolves it from the caller token; the core never performs identity lookup.
type Actor struct {
	UserID ID
	Email  string
	Role   Role
}

// AuditName is the identity recorded in the audit trail, "system" when absent.
func (a Actor) AuditName() string {
	if strings.TrimSpace(a.Email) != "" {
		return a.Email
	}
	return "system"
}

// IsStaff reports whether the actor holds the EMPLOYEE or ADMIN role.
func (a Actor) IsStaff() bool {
	return a.Role == RoleEmployee || a.Role == RoleAdmin
}
