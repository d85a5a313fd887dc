package auth

import "letsparkit/internal/users"

// represents the authentication response
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// represents user data in responses (without sensitive info)
type UserResponse struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Role    string         `json:"role"`
	Phone   string         `json:"phone,omitempty"`
	Vehicle *users.Vehicle `json:"vehicle,omitempty"`
}

func toUserResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    string(u.Role),
		Phone:   u.Phone,
		Vehicle: u.Vehicle,
	}
}
