package common

// Actor roles. Guards provide labor, employers request it; admin only
// exists for the directory surface.
const (
	RoleGuard    = "guard"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// Account statuses
const (
	StatusActive      = "active"
	StatusDeactivated = "deactivated"
)

// ValidRole reports whether role is one of the known actor roles.
func ValidRole(role string) bool {
	return role == RoleGuard || role == RoleEmployer || role == RoleAdmin
}
