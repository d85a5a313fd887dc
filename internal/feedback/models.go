package feedback

// Caller is the authenticated user leaving feedback
type Caller struct {
	UserID  string
	Name    string
	IsAdmin bool
}

// AdminFilter narrows the moderation listing
type AdminFilter struct {
	Search string // user name, comment or location name
	Status string // "" or "all" matches every status
	Rating int    // 0 matches every rating
}

// Stats summarises ratings across all feedback
type Stats struct {
	Total         int         `json:"total"`
	AverageRating float64     `json:"averageRating"`
	Distribution  map[int]int `json:"distribution"` // rating -> count, keys 1..5
	Responded     int         `json:"responded"`
	Hidden        int         `json:"hidden"`
	Flagged       int         `json:"flagged"`
}
