package user

import "strings"

const (
	RoleUser       = "USER"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// Principal is the authenticated caller identity supplied by the
// account service. The core treats it as opaque and trusts it.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// NormalizeRole maps an upstream role string onto the known roles,
// defaulting to RoleUser for anything unrecognized.
func NormalizeRole(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case RoleSuperAdmin, "SUPERADMIN", "ADMIN":
		return RoleSuperAdmin
	default:
		return RoleUser
	}
}
