package domain

import "time"

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleDonor     UserRole = "donor"
	UserRoleVolunteer UserRole = "volunteer"
	UserRoleAdmin     UserRole = "admin"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleDonor, UserRoleVolunteer, UserRoleAdmin:
		return true
	}
	return false
}

// User is a profile row owned by the hosted auth backend.
type User struct {
	ID        string
	Email     string
	FullName  string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user can reach the back office.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
