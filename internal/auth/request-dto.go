package auth

// login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type VehicleRequest struct {
	Type   string `json:"type" validate:"required,max=50"`
	Number string `json:"number" validate:"required,min=4,max=20"`
}

// registration request payload
type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Phone    string          `json:"phone,omitempty" validate:"omitempty,numeric,min=10,max=15"`
	Vehicle  *VehicleRequest `json:"vehicle,omitempty" validate:"omitempty"`
	Role     string          `json:"role,omitempty"` // ignored, sign-up always creates a user
}

// represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// represents logout request
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}
