package locations

import "letsparkit/internal/parking"

// UpdateLocationRequest holds the admin-editable fields; omitted fields keep their value
type UpdateLocationRequest struct {
	Name         *string              `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Address      *string              `json:"address,omitempty" validate:"omitempty,max=255"`
	Area         *string              `json:"area,omitempty" validate:"omitempty,max=120"`
	City         *string              `json:"city,omitempty" validate:"omitempty,max=120"`
	PricePerHour *float64             `json:"pricePerHour,omitempty"`
	Image        *string              `json:"image,omitempty" validate:"omitempty,url"`
	Amenities    []string             `json:"amenities,omitempty" validate:"omitempty,dive,max=60"`
	Coordinates  *parking.Coordinates `json:"coordinates,omitempty"`
}

func (r UpdateLocationRequest) toUpdate() parking.LocationUpdate {
	return parking.LocationUpdate{
		Name:         r.Name,
		Address:      r.Address,
		Area:         r.Area,
		City:         r.City,
		PricePerHour: r.PricePerHour,
		Image:        r.Image,
		Amenities:    r.Amenities,
		Coordinates:  r.Coordinates,
	}
}
