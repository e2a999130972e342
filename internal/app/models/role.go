package models

type Role string

const (
	RolePatient  Role = "patient"
	RoleDoctor   Role = "doctor"
	RoleFacility Role = "facility"
	RoleAdmin    Role = "admin"
)

// ProfileTypeInactive marks a soft-deleted patient profile. It is not a Role.
const ProfileTypeInactive = "inactive"

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RolePatient, RoleDoctor, RoleFacility, RoleAdmin:
		return Role(value), true
	}
	return "", false
}

// ParseSignUpRole accepts only the roles a user may choose at sign-up.
// Admin comes from the is_admin check, never from sign-up metadata.
func ParseSignUpRole(value string) (Role, bool) {
	switch Role(value) {
	case RolePatient, RoleDoctor, RoleFacility:
		return Role(value), true
	}
	return "", false
}
