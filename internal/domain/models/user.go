package models

import "yatrasathi/internal/domain"

// User is read-only reference data here. Credentials and token issuance belong
// to the external identity service.
type User struct {
	ID     domain.ID   `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Phone  string      `json:"phone,omitempty"`
	Role   domain.Role `json:"role"`
	Active bool        `json:"active"`
}
