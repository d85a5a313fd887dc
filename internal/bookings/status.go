package bookings

import (
	"fmt"
	"strings"

	"letsparkit/internal/parking"
)

// parseStatusFilter accepts "", "all" or a booking status
func parseStatusFilter(raw string) (parking.BookingStatus, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "all" {
		return "", nil
	}
	status := parking.BookingStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatusFilter, raw)
	}
	return status, nil
}
