package analytics

import "letsparkit/internal/parking"

// DashboardAnalytics is the admin overview
type DashboardAnalytics struct {
	TotalBookings     int                 `json:"totalBookings"`
	ConfirmedBookings int                 `json:"confirmedBookings"`
	TotalRevenue      float64             `json:"totalRevenue"`
	TodayBookings     int                 `json:"todayBookings"`
	TodayShare        float64             `json:"todayShare"` // percent of all bookings, one decimal
	RecentBookings    []parking.Booking   `json:"recentBookings"`
	RecentFeedback    []parking.Feedback  `json:"recentFeedback"`
	Occupancy         []LocationOccupancy `json:"occupancy"`
	GeneratedAt       string              `json:"generatedAt"`
}

type LocationOccupancy struct {
	LocationID       string `json:"locationId"`
	Name             string `json:"name"`
	TotalSlots       int    `json:"totalSlots"`
	AvailableSlots   int    `json:"availableSlots"`
	OccupancyPercent int    `json:"occupancyPercent"`
}
