package models

// RoleType defines the role of a user on the platform
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleFaculty RoleType = "faculty"
	RoleAdmin   RoleType = "admin"
)

// IsValidRole reports whether the given string is a known role
func IsValidRole(role string) bool {
	switch RoleType(role) {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}
