package users

// user data in responses (without sensitive info)
type UserResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Phone        string   `json:"phone,omitempty"`
	Vehicle      *Vehicle `json:"vehicle,omitempty"`
	BookingCount int      `json:"bookingCount"`
}

type UserCounts struct {
	Total        int `json:"total"`
	Admins       int `json:"admins"`
	Users        int `json:"users"`
	WithVehicles int `json:"withVehicles"`
}

type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Counts UserCounts     `json:"counts"`
}
