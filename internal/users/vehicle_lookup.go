package users

import "context"

// VehicleLookup exposes registered vehicle numbers to the booking flow
type VehicleLookup struct {
	repo Repository
}

func NewVehicleLookup(repo Repository) *VehicleLookup {
	return &VehicleLookup{repo: repo}
}

// VehicleNumber returns "" for unknown users or users without a vehicle
func (l *VehicleLookup) VehicleNumber(ctx context.Context, userID string) string {
	user, err := l.repo.GetUserByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.VehicleNumber()
}
