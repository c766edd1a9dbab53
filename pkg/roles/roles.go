package roles

// Role is the permission level of a user account.
type Role string

const (
	User  Role = "user"
	Admin Role = "admin"
)

type HierarchyLevel int

const (
	UserLevel  HierarchyLevel = 1
	AdminLevel HierarchyLevel = 2
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Admin:
		return AdminLevel
	default:
		return UserLevel
	}
}

// HasPermission reports whether the role covers the required one.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case User, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
