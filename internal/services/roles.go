package services

import "yatrasathi/internal/domain"

// requireRole is the capability check run before each operation body.
func requireRole(actor domain.Actor, op string, allowed ...domain.Role) error {
	for _, r := range allowed {
		if actor.Role == r {
			return nil
		}
	}
	return domain.UnauthorizedError{Operation: op, Role: actor.Role}
}

func requireStaff(actor domain.Actor, op string) error {
	return requireRole(actor, op, domain.RoleEmployee, domain.RoleAdmin)
}
