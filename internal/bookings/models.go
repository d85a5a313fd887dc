package bookings

// Caller is the authenticated user acting on a booking
type Caller struct {
	UserID  string
	Name    string
	IsAdmin bool
}

// AdminFilter narrows the admin booking listing
type AdminFilter struct {
	Search string
	Status string // "" or "all" matches every status
}
