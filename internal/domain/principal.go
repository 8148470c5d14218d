package domain

import "github.com/google/uuid"

// Principal is the authenticated caller. EmployeeID is uuid.Nil when the
// identity has no employee profile (typical for Admin accounts).
type Principal struct {
	IdentityID uuid.UUID
	EmployeeID uuid.UUID
	Role       Role
	Email      string
	Name       string
}

func (p Principal) HasEmployee() bool {
	return p.EmployeeID != uuid.Nil
}
