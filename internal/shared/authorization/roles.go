package authorization

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleTechnician UserRole = "technician"
	RoleUser       UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsPrivileged reports whether the role may triage and resolve repairs.
func (r UserRole) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleTechnician
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleTechnician || r == RoleUser
}

// ParseUserRole falls back to the base role for unknown input.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}

// PrivilegedRoles lists the roles that receive new-request notifications.
func PrivilegedRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleTechnician}
}
