package models

import "github.com/Temutjin2k/ride-hail-insights/internal/domain/types"

// KPI is the dashboard-wide scorecard of a filtered subset.
// Rates are percentages rounded to two decimals.
type KPI struct {
	TotalRequests       int `json:"total_requests"`
	Trips               int `json:"total_trips"`
	DriverCancellations int `json:"driver_cancellations"`
	RiderCancellations  int `json:"rider_cancellations"`
	Timeouts            int `json:"timeouts"`
	NoDriversFound      int `json:"no_drivers_found"`

	FulfillmentRate        float64 `json:"fulfillment_rate"`
	AcceptanceRate         float64 `json:"acceptance_rate"`
	DriverCancellationRate float64 `json:"driver_cancellation_rate"`
	RiderCancellationRate  float64 `json:"rider_cancellation_rate"`
	TimeoutRate            float64 `json:"timeout_rate"`
}

// GroupKPI is one row of a breakdown table.
type GroupKPI struct {
	Key string `json:"key"`

	TotalRequests       int `json:"total_requests"`
	Trips               int `json:"total_trips"`
	DriverCancellations int `json:"driver_cancellations"`
	RiderCancellations  int `json:"rider_cancellations"`
	Timeouts            int `json:"timeouts"`

	FulfillmentRate        float64 `json:"fulfillment_rate"`
	AcceptanceRate         float64 `json:"acceptance_rate"`
	DriverCancellationRate float64 `json:"driver_cancellation_rate"`
	RiderCancellationRate  float64 `json:"rider_cancellation_rate"`
	TimeoutRate            float64 `json:"timeout_rate"`

	// InsufficientData marks rows whose rates were computed against a
	// clamped denominator and therefore read 0.
	InsufficientData bool `json:"insufficient_data"`
}

// GroupedTable holds breakdown rows in first-seen order of their key.
type GroupedTable struct {
	Dimension types.Dimension `json:"dimension"`
	Rows      []GroupKPI      `json:"rows"`
}

func (t GroupedTable) Len() int {
	return len(t.Rows)
}

// HourlyCounts is one row of the hour x category pivot.
type HourlyCounts struct {
	Hour   int                   `json:"hour"`
	Counts map[types.Outcome]int `json:"counts"`
}
