package domain

import "strings"

// Role is the closed set of caller roles. The zero value is not a valid role.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "Admin"
)

func AllRoles() []Role {
	return []Role{RoleEmployee, RoleHR, RoleAdmin}
}

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleHR, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole accepts any casing ("hr", "ADMIN").
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles() {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}
