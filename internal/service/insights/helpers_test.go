package insights

import (
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
)

var day0 = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

type tripOpt func(*models.Trip)

func trip(o types.Outcome, opts ...tripOpt) models.Trip {
	t := models.Trip{
		City:        "Nairobi",
		VehicleType: "Car",
		DriverID:    "D1",
		TripType:    "Standard",
		RiderID:     "R1",
		Country:     "Kenya",
		Region:      "A",
		Corporate:   "None",
		Outcome:     o,
		Date:        day0,
		Hour:        8,
		Location:    &models.Location{Latitude: -1.28, Longitude: 36.82},
		Distance:    5,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func region(r string) tripOpt { return func(t *models.Trip) { t.Region = r } }
func driver(d string) tripOpt { return func(t *models.Trip) { t.DriverID = d } }
func city(c string) tripOpt { return func(t *models.Trip) { t.City = c } }
func vehicle(v string) tripOpt { return func(t *models.Trip) { t.VehicleType = v } }
func corporate(c string) tripOpt { return func(t *models.Trip) { t.Corporate = c } }
func hour(h int) tripOpt { return func(t *models.Trip) { t.Hour = h } }
func distance(d float64) tripOpt { return func(t *models.Trip) { t.Distance = d } }
func daysAfter(n int) tripOpt { return func(t *models.Trip) { t.Date = day0.AddDate(0, 0, n) } }
func noLocation() tripOpt { return func(t *models.Trip) { t.Location = nil } }

func repeat(n int, o types.Outcome, opts ...tripOpt) []models.Trip {
	out := make([]models.Trip, n)
	for i := range out {
		out[i] = trip(o, opts...)
	}
	return out
}

func concat(parts ...[]models.Trip) []models.Trip {
	var out []models.Trip
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// scenarioTrips is 5 trips, 2 driver and 1 rider cancellation.
func scenarioTrips() []models.Trip {
	return concat(
		repeat(5, types.OutcomeTrip),
		repeat(2, types.OutcomeDriverCancellation),
		repeat(1, types.OutcomeRiderCancellation),
	)
}

// regionTrips gives region A 80% and region B 95% fulfillment.
func regionTrips() []models.Trip {
	return concat(
		repeat(4, types.OutcomeTrip, region("A")),
		repeat(1, types.OutcomeDriverCancellation, region("A")),
		repeat(19, types.OutcomeTrip, region("B")),
		repeat(1, types.OutcomeRiderCancellation, region("B")),
	)
}

// driverTrips gives driver Dn a fulfillment rate that rises with n.
func driverTrips(n int) []models.Trip {
	var out []models.Trip
	for i := range n {
		id := fmt.Sprintf("D%02d", i)
		out = append(out, repeat(i+1, types.OutcomeTrip, driver(id))...)
		out = append(out, trip(types.OutcomeDriverCancellation, driver(id)))
	}
	return out
}
