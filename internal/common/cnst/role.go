package cnst

// UserType represents the role assigned to a system user
type UserType string

const (
	// RoleSuperAdmin has unrestricted mutation rights including user and settings management
	RoleSuperAdmin UserType = "super_admin"
	// RoleViewEdit may create agents and leads and claim leads, but not delete
	RoleViewEdit UserType = "view_edit"
	// RoleViewOnly is read-only
	RoleViewOnly UserType = "view_only"
)

// Valid reports whether the user type is one of the known roles
func (t UserType) Valid() bool {
	switch t {
	case RoleSuperAdmin, RoleViewEdit, RoleViewOnly:
		return true
	}
	return false
}
