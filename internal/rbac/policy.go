package rbac

import "go-hrms/internal/domain"

const (
	ResourceLeave        = "leave"
	ResourceEmployee     = "employee"
	ResourceIdentity     = "identity"
	ResourceAnnouncement = "announcement"
)

func grant(resource, action string, roles ...domain.Role) []domain.Permission {
	out := make([]domain.Permission, 0, len(roles))
	for _, r := range roles {
		out = append(out, domain.Permission{Role: r, Resource: resource, Action: action})
	}
	return out
}

// DefaultPermissions is the full permission table. Anything not listed is denied.
func DefaultPermissions() []domain.Permission {
	var (
		emp   = domain.RoleEmployee
		hr    = domain.RoleHR
		admin = domain.RoleAdmin
	)

	var perms []domain.Permission
	for _, g := range [][]domain.Permission{
		grant(ResourceLeave, "apply", emp, hr),
		grant(ResourceLeave, "read_all", hr, admin),
		grant(ResourceLeave, "read_own", emp, hr),
		grant(ResourceLeave, "balance", emp, hr),
		grant(ResourceLeave, "decide", hr, admin),
		grant(ResourceLeave, "delete", admin),
		grant(ResourceLeave, "export", hr, admin),

		grant(ResourceEmployee, "create", hr, admin),
		grant(ResourceEmployee, "read", hr, admin),
		grant(ResourceEmployee, "update", hr, admin),
		grant(ResourceEmployee, "delete", admin),
		grant(ResourceEmployee, "read_self", emp, hr, admin),

		grant(ResourceIdentity, "register", admin),
		grant(ResourceIdentity, "read", admin),
		grant(ResourceIdentity, "update", admin),
		grant(ResourceIdentity, "change_password", emp, hr, admin),

		grant(ResourceAnnouncement, "read", emp, hr, admin),
		grant(ResourceAnnouncement, "write", hr, admin),
	} {
		perms = append(perms, g...)
	}
	return perms
}
