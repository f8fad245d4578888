package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin" // Workspace owner - full access, at most one exists
	RoleManager    Role = "manager"     // Can view team attendance and reports
	RoleStaff      Role = "staff"       // Regular staff member
)

// ParseRole maps a stored role string onto the closed role set.
// Unknown or empty input reports ok=false and must be treated as least privilege.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleManager, RoleStaff:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the directory record attached to a user account.
type Profile struct {
	UserID      string
	FullName    string
	Email       string
	CompanyName *string
	ManagerID   *string // "reports to", self-referential
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	Role *Role
}

// IsSuperAdmin checks for full administrative access
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// IsManager checks for manager-or-above access
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleSuperAdmin
}
