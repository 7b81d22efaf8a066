package models

import "fmt"

// Role is the fixed role enumeration carried by the user directory. It only
// selects which list endpoint a store calls; the backends remain the actual
// authority on every request.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleNurse   Role = "NURSE"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// ParseRole validates a role string from the user directory.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleNurse, RoleDoctor, RolePatient:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Identity is the resolved session identity derived from a bearer token's
// subject claim via the user directory.
type Identity struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// UserDetail is the user-directory projection returned by
// GET /api/user/detail/{email}.
type UserDetail struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
	Role   string `json:"role"`
}
