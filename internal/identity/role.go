package identity

// Role is the closed set of account roles. Every authenticated request
// carries exactly one of them.
type Role string

const (
	RoleOrgAdmin            Role = "ORG_ADMIN"
	RoleChiefTeaching       Role = "CHIEF_TEACHING"
	RoleChiefAdminTechnical Role = "CHIEF_ADMIN_TECHNICAL"
	RoleChiefContract       Role = "CHIEF_CONTRACT"
	RoleEmployee            Role = "EMPLOYEE"
)

// DepartmentKind mirrors the kinds a department can have. Chiefs lead at
// most one department, and its kind must match their role.
type DepartmentKind string

const (
	KindTeaching       DepartmentKind = "TEACHING"
	KindAdminTechnical DepartmentKind = "ADMIN_TECHNICAL"
	KindContract       DepartmentKind = "CONTRACT"
)

func ParseRole(v string) (Role, bool) {
	switch Role(v) {
	case RoleOrgAdmin, RoleChiefTeaching, RoleChiefAdminTechnical, RoleChiefContract, RoleEmployee:
		return Role(v), true
	}
	return "", false
}

func (r Role) IsChief() bool {
	switch r {
	case RoleChiefTeaching, RoleChiefAdminTechnical, RoleChiefContract:
		return true
	}
	return false
}

// LedKind returns the department kind a chief role is allowed to lead.
func (r Role) LedKind() (DepartmentKind, bool) {
	switch r {
	case RoleChiefTeaching:
		return KindTeaching, true
	case RoleChiefAdminTechnical:
		return KindAdminTechnical, true
	case RoleChiefContract:
		return KindContract, true
	}
	return "", false
}

// ChiefRoleFor is the inverse of LedKind.
func ChiefRoleFor(kind DepartmentKind) (Role, bool) {
	switch kind {
	case KindTeaching:
		return RoleChiefTeaching, true
	case KindAdminTechnical:
		return RoleChiefAdminTechnical, true
	case KindContract:
		return RoleChiefContract, true
	}
	return "", false
}
