package insights

import (
	"testing"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateScenario(t *testing.T) {
	k := Aggregate(scenarioTrips())

	assert.Equal(t, 8, k.TotalRequests)
	assert.Equal(t, 5, k.Trips)
	assert.Equal(t, 2, k.DriverCancellations)
	assert.Equal(t, 1, k.RiderCancellations)
	assert.Equal(t, 62.5, k.FulfillmentRate)
	assert.Equal(t, 62.5, k.AcceptanceRate)
	assert.Equal(t, 25.0, k.DriverCancellationRate)
	assert.Equal(t, 12.5, k.RiderCancellationRate)
	assert.Equal(t, 0.0, k.TimeoutRate)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Equal(t, models.KPI{}, Aggregate(nil))
	assert.Equal(t, models.KPI{}, Aggregate([]models.Trip{}))
}

func TestAggregateOnlyNoDrivers(t *testing.T) {
	k := Aggregate(repeat(3, types.OutcomeNoDriversFound))
	assert.Equal(t, 3, k.TotalRequests)
	assert.Equal(t, 3, k.NoDriversFound)
	assert.Zero(t, k.FulfillmentRate)
	assert.Zero(t, k.AcceptanceRate)
}

func TestAggregateCountsPartitionTotal(t *testing.T) {
	trips := concat(
		scenarioTrips(),
		repeat(3, types.OutcomeTimeout),
		repeat(4, types.OutcomeNoDriversFound),
	)
	k := Aggregate(trips)

	assert.Equal(t, len(trips), k.TotalRequests)
	assert.Equal(t, k.TotalRequests, k.Trips+k.DriverCancellations+k.RiderCancellations+k.Timeouts+k.NoDriversFound)
	assert.Equal(t, 62.5, k.FulfillmentRate)
	assert.Equal(t, 45.45, k.AcceptanceRate)
	assert.GreaterOrEqual(t, k.AcceptanceRate, 0.0)
	assert.LessOrEqual(t, k.FulfillmentRate, 100.0)
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, Rate(0, 0))
	assert.Equal(t, 33.33, Rate(1, 3))
	assert.Equal(t, 66.67, Rate(2, 3))
	assert.Equal(t, 100.0, Rate(4, 4))
}

func TestAggregateBy(t *testing.T) {
	trips := concat(
		repeat(2, types.OutcomeTrip, region("North")),
		repeat(1, types.OutcomeDriverCancellation, region("South")),
		repeat(3, types.OutcomeNoDriversFound, region("Ghost")),
		repeat(1, types.OutcomeNoDriversFound, region("North")),
		repeat(1, types.OutcomeRiderCancellation, region("North")),
		repeat(1, types.OutcomeTimeout, region("East")),
	)

	table, err := AggregateBy(trips, types.DimensionRegion)
	require.NoError(t, err)
	assert.Equal(t, types.DimensionRegion, table.Dimension)

	keys := make([]string, 0, table.Len())
	for _, r := range table.Rows {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"North", "South", "East"}, keys, "first-seen order, no-driver-only group dropped")

	north := table.Rows[0]
	assert.Equal(t, 3, north.TotalRequests, "no drivers found rows are excluded before grouping")
	assert.Equal(t, 2, north.Trips)
	assert.Equal(t, 1, north.RiderCancellations)
	assert.Zero(t, north.DriverCancellations)
	assert.Equal(t, 66.67, north.FulfillmentRate)
	assert.Equal(t, 33.33, north.RiderCancellationRate)
	assert.False(t, north.InsufficientData)

	south := table.Rows[1]
	assert.Zero(t, south.Trips, "missing outcomes are zero")
	assert.Zero(t, south.FulfillmentRate)
	assert.Equal(t, 100.0, south.DriverCancellationRate)

	east := table.Rows[2]
	assert.Zero(t, east.FulfillmentRate)
	assert.Zero(t, east.AcceptanceRate)
	assert.Equal(t, 100.0, east.TimeoutRate)
	assert.True(t, east.InsufficientData)
}

func TestAggregateByDimensions(t *testing.T) {
	trips := []models.Trip{
		trip(types.OutcomeTrip, driver("D1"), corporate("Acme")),
		trip(types.OutcomeTrip, driver("D2"), corporate("None")),
	}

	for _, dim := range []types.Dimension{types.DimensionDriver, types.DimensionRider, types.DimensionRegion, types.DimensionCorporate} {
		table, err := AggregateBy(trips, dim)
		require.NoError(t, err, dim)
		total := 0
		for _, r := range table.Rows {
			total += r.TotalRequests
		}
		assert.Equal(t, len(trips), total, dim)
	}

	_, err := AggregateBy(trips, types.Dimension("city"))
	assert.ErrorIs(t, err, types.ErrUnknownDimension)
}

func TestAggregateByEmpty(t *testing.T) {
	table, err := AggregateBy(nil, types.DimensionDriver)
	require.NoError(t, err)
	assert.NotNil(t, table.Rows)
	assert.Zero(t, table.Len())
}

func TestTopAndBottomByFulfillment(t *testing.T) {
	table := aggregateBy(driverTrips(20), types.DimensionDriver)

	top := TopByFulfillment(table.Rows, RankSize)
	bottom := BottomByFulfillment(table.Rows, RankSize)
	require.Len(t, top, RankSize)
	require.Len(t, bottom, RankSize)

	assert.Equal(t, "D19", top[0].Key)
	assert.Equal(t, "D00", bottom[0].Key)
	for i := 1; i < RankSize; i++ {
		assert.GreaterOrEqual(t, top[i-1].FulfillmentRate, top[i].FulfillmentRate)
		assert.LessOrEqual(t, bottom[i-1].FulfillmentRate, bottom[i].FulfillmentRate)
	}

	seen := map[string]bool{}
	for _, r := range top {
		seen[r.Key] = true
	}
	for _, r := range bottom {
		assert.False(t, seen[r.Key], "top and bottom overlap on %s", r.Key)
	}
}

func TestRankingTiesKeepTableOrder(t *testing.T) {
	rows := []models.GroupKPI{
		{Key: "X", FulfillmentRate: 50},
		{Key: "Y", FulfillmentRate: 80},
		{Key: "Z", FulfillmentRate: 50},
		{Key: "W", FulfillmentRate: 80},
	}

	top := TopByFulfillment(rows, 4)
	assert.Equal(t, []string{"Y", "W", "X", "Z"}, keysOf(top))

	bottom := BottomByFulfillment(rows, 4)
	assert.Equal(t, []string{"X", "Z", "Y", "W"}, keysOf(bottom))

	assert.Equal(t, []string{"X", "Y", "Z", "W"}, keysOf(rows), "input must not be reordered")
}

func TestRankingShortTable(t *testing.T) {
	table := aggregateBy(driverTrips(3), types.DimensionDriver)
	assert.Len(t, TopByFulfillment(table.Rows, RankSize), 3)
	assert.Len(t, BottomByFulfillment(table.Rows, RankSize), 3)
	assert.Empty(t, TopByFulfillment(nil, RankSize))
}

func TestHourlyPivot(t *testing.T) {
	trips := []models.Trip{
		trip(types.OutcomeTrip, hour(17)),
		trip(types.OutcomeTimeout, hour(8)),
		trip(types.OutcomeTrip, hour(17)),
	}

	pivot := HourlyPivot(trips)
	require.Len(t, pivot, 2)

	assert.Equal(t, 8, pivot[0].Hour)
	assert.Equal(t, 1, pivot[0].Counts[types.OutcomeTimeout])
	assert.Equal(t, 17, pivot[1].Hour)
	assert.Equal(t, 2, pivot[1].Counts[types.OutcomeTrip])

	for _, row := range pivot {
		assert.Len(t, row.Counts, len(types.Outcomes()))
	}
	assert.Zero(t, pivot[1].Counts[types.OutcomeNoDriversFound])
}

func keysOf(rows []models.GroupKPI) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Key)
	}
	return out
}
