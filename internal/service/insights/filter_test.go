package insights

import (
	"testing"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	trips := []models.Trip{
		trip(types.OutcomeTrip, city("Nairobi"), vehicle("Car"), distance(2)),
		trip(types.OutcomeTrip, city("Lagos"), vehicle("Bike"), distance(10)),
		trip(types.OutcomeTimeout, city("Accra"), vehicle("Car"), region("B"), daysAfter(3)),
		trip(types.OutcomeTrip, city("Nairobi"), vehicle("Car"), driver("D2"), daysAfter(10), distance(25.5)),
	}

	tests := []struct {
		name   string
		filter models.TripFilter
		want   []int
	}{
		{name: "zero filter keeps everything", filter: models.TripFilter{}, want: []int{0, 1, 2, 3}},
		{name: "All is a wildcard", filter: models.TripFilter{Cities: []string{models.All}, DriverID: models.All, Region: models.All}, want: []int{0, 1, 2, 3}},
		{name: "city set membership", filter: models.TripFilter{Cities: []string{"Nairobi", "Accra"}}, want: []int{0, 2, 3}},
		{name: "cities and vehicle types are ANDed", filter: models.TripFilter{Cities: []string{"Nairobi", "Lagos"}, VehicleTypes: []string{"Car"}}, want: []int{0, 3}},
		{name: "single value equality", filter: models.TripFilter{DriverID: "D2"}, want: []int{3}},
		{name: "region equality", filter: models.TripFilter{Region: "B"}, want: []int{2}},
		{name: "date range inclusive on both ends", filter: models.TripFilter{DateFrom: day0.AddDate(0, 0, 3), DateTo: day0.AddDate(0, 0, 10)}, want: []int{2, 3}},
		{name: "date bounds ignore time of day", filter: models.TripFilter{DateFrom: day0.Add(20 * time.Hour), DateTo: day0.Add(20 * time.Hour)}, want: []int{0, 1}},
		{name: "distance range inclusive", filter: models.TripFilter{Distance: &models.DistanceRange{Min: 2, Max: 10}}, want: []int{0, 1, 2}},
		{name: "distance upper bound inclusive", filter: models.TripFilter{Distance: &models.DistanceRange{Min: 25.5, Max: 25.5}}, want: []int{3}},
		{name: "no match is an empty result", filter: models.TripFilter{Country: "Ghana"}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(trips, tt.filter)
			want := make([]models.Trip, 0, len(tt.want))
			for _, i := range tt.want {
				want = append(want, trips[i])
			}
			assert.Equal(t, want, got)

			for _, row := range got {
				assert.True(t, Match(row, tt.filter))
			}
		})
	}
}

func TestApplyKeepsRowsWithoutCoordinates(t *testing.T) {
	trips := []models.Trip{
		trip(types.OutcomeTrip),
		trip(types.OutcomeTrip, noLocation()),
	}

	filtered := Apply(trips, models.TripFilter{})
	require.Len(t, filtered, 2)
	assert.Equal(t, 2, Aggregate(filtered).Trips)

	located := Located(filtered)
	require.Len(t, located, 1)
	assert.NotNil(t, located[0].Location)
}

func TestLocations(t *testing.T) {
	trips := []models.Trip{
		trip(types.OutcomeTrip),
		trip(types.OutcomeTimeout, noLocation()),
	}

	fc := Locations(trips)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Trips", fc.Features[0].Properties["category"])
	assert.NotNil(t, fc.BBox)

	assert.Empty(t, Locations(nil).Features)
}

func TestOptions(t *testing.T) {
	trips := []models.Trip{
		trip(types.OutcomeTrip, city("Lagos"), distance(3), daysAfter(2)),
		trip(types.OutcomeTrip, city("Accra"), distance(12.5)),
		trip(types.OutcomeTrip, city("Lagos"), distance(1), daysAfter(5)),
	}

	opts := Options(trips)
	assert.Equal(t, []string{"Accra", "Lagos"}, opts.Cities)
	assert.Equal(t, day0, opts.DateMin)
	assert.Equal(t, day0.AddDate(0, 0, 5), opts.DateMax)
	assert.Equal(t, models.DistanceRange{Min: 1, Max: 12.5}, opts.Distance)
}

func TestDistanceBoundsEmpty(t *testing.T) {
	assert.Equal(t, models.DistanceRange{}, DistanceBounds(nil))
}
