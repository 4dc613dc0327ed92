package models

import (
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
)

// Trip is one ride request row of the exported dataset.
type Trip struct {
	City        string        `json:"city"`
	VehicleType string        `json:"vehicle_type"`
	DriverID    string        `json:"driver_id"`
	TripType    string        `json:"trip_type"`
	RiderID     string        `json:"rider_id"`
	Country     string        `json:"country"`
	Region      string        `json:"region"`
	Corporate   string        `json:"corporate"`
	Outcome     types.Outcome `json:"category"`

	Date time.Time `json:"date"`
	Hour int       `json:"hour"`

	// Location is nil when the export has no coordinates for the row.
	Location *Location `json:"location,omitempty"`
	Distance float64   `json:"distance_km"`
}

// Field returns the value of a grouping dimension.
func (t Trip) Field(d types.Dimension) string {
	switch d {
	case types.DimensionDriver:
		return t.DriverID
	case types.DimensionRider:
		return t.RiderID
	case types.DimensionRegion:
		return t.Region
	case types.DimensionCorporate:
		return t.Corporate
	}
	return ""
}

// Day truncates t to a calendar day in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
