package members

// Role is the account's authorization tier. It is a closed enumeration:
// every stored account carries exactly one of the values below.
type Role string

const (
	// RoleAdmin is implicitly authorized for every staff-gated operation.
	RoleAdmin Role = "admin"
	// RoleStaff may run approval workflows and member listings.
	RoleStaff Role = "staff"
	// RoleMember is the default tier for self-registered accounts.
	RoleMember Role = "member"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleMember:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role is the admin tier.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsStaff reports whether the role clears staff gates. Admin counts.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleStaff
}

// ParseRole safely parses a string into a Role
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	return role, role.IsValid()
}

// AssignableRoles returns the roles an admin may hand out through the
// privileged create path. Member accounts only ever come from
// self-registration.
func AssignableRoles() []Role {
	return []Role{RoleAdmin, RoleStaff}
}

// IsAssignable reports whether the role may be requested on admin-issued
// account creation.
func (r Role) IsAssignable() bool {
	return r == RoleAdmin || r == RoleStaff
}
