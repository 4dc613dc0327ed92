package models

import (
	"time"

	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
)

// All is the sidebar value that disables a single-value filter.
const All = "All"

// IsWildcard reports whether a single-value selection matches everything.
func IsWildcard(v string) bool {
	return v == "" || v == All
}

type DistanceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r DistanceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// TripFilter is the sidebar selection applied to the trip dataset.
// Empty sets, empty strings, "All" and zero dates are wildcards.
type TripFilter struct {
	Cities       []string `json:"cities,omitempty"`
	VehicleTypes []string `json:"vehicle_types,omitempty"`

	DriverID  string `json:"driver_id,omitempty"`
	TripType  string `json:"trip_type,omitempty"`
	RiderID   string `json:"rider_id,omitempty"`
	Country   string `json:"country,omitempty"`
	Region    string `json:"region,omitempty"`
	Corporate string `json:"corporate,omitempty"`

	DateFrom time.Time `json:"date_from,omitzero"`
	DateTo   time.Time `json:"date_to,omitzero"`

	Distance *DistanceRange `json:"distance,omitempty"`
}

func (f TripFilter) Validate(v *validator.Validator) {
	if !f.DateFrom.IsZero() && !f.DateTo.IsZero() {
		v.Check(!f.DateTo.Before(f.DateFrom), "date_to", "must not be before date_from")
	}
	if f.Distance != nil {
		v.Check(f.Distance.Min >= 0, "distance_min", "must not be negative")
		v.Check(f.Distance.Max >= f.Distance.Min, "distance_max", "must not be less than distance_min")
	}
}

// FilterOptions lists the selectable values of every sidebar widget.
type FilterOptions struct {
	Cities       []string `json:"cities"`
	VehicleTypes []string `json:"vehicle_types"`
	Drivers      []string `json:"drivers"`
	TripTypes    []string `json:"trip_types"`
	Riders       []string `json:"riders"`
	Countries    []string `json:"countries"`
	Regions      []string `json:"regions"`
	Corporates   []string `json:"corporates"`

	DateMin  time.Time     `json:"date_min"`
	DateMax  time.Time     `json:"date_max"`
	Distance DistanceRange `json:"distance"`
}
