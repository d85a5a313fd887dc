package users

import (
	"strings"
	"time"

	"letsparkit/internal/shared/constants"
)

type Role string

const (
	RoleUser  Role = constants.ROLE_USER
	RoleAdmin Role = constants.ROLE_ADMIN
)

type Vehicle struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // hide in json
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	Vehicle      *Vehicle  `json:"vehicle,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// VehicleNumber returns the registered vehicle number or ""
func (u *User) VehicleNumber() string {
	if u.Vehicle == nil {
		return ""
	}
	return u.Vehicle.Number
}

func IsValidRole(role string) bool {
	switch Role(strings.ToLower(role)) {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// NormalizeEmail is the lookup form of an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
