package users

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	user     User
	password string
}

var seedCreatedAt = time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)

func seedUsers() []seedUser {
	return []seedUser{
		{User{ID: "admin-1", Name: "Admin User", Email: "admin@letsparkitapp.com", Role: RoleAdmin, Phone: "9876543210"}, "admin123"},
		{User{ID: "user-1", Name: "Rahul Sharma", Email: "user@example.com", Role: RoleUser, Phone: "9998887776", Vehicle: &Vehicle{Type: "Car", Number: "DL01AB1234"}}, "password123"},
		{User{ID: "user-2", Name: "Priya Singh", Email: "priya@example.com", Role: RoleUser, Phone: "8887776665", Vehicle: &Vehicle{Type: "Motorcycle", Number: "HR26CD5678"}}, "password123"},
		{User{ID: "user-3", Name: "Amit Kumar", Email: "amit@example.com", Role: RoleUser, Phone: "7776665554", Vehicle: &Vehicle{Type: "Car", Number: "UP16EF9012"}}, "password123"},
		{User{ID: "user-4", Name: "Sneha Gupta", Email: "sneha@example.com", Role: RoleUser, Phone: "6665554443", Vehicle: &Vehicle{Type: "Car", Number: "DL02GH3456"}}, "password123"},
	}
}

// SeedUsers returns the sample identities with hashed passwords
func SeedUsers(bcryptCost int) ([]User, error) {
	seed := seedUsers()
	out := make([]User, 0, len(seed))
	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", s.user.ID, err)
		}
		u := s.user
		u.PasswordHash = string(hash)
		u.CreatedAt = seedCreatedAt
		out = append(out, u)
	}
	return out, nil
}

// NewSeededRepository creates a directory loaded with the sample identities
func NewSeededRepository(bcryptCost int) (Repository, error) {
	seed, err := SeedUsers(bcryptCost)
	if err != nil {
		return nil, err
	}
	return NewRepository(seed...), nil
}
