package insights

import (
	"strings"
	"testing"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(question string, trips []models.Trip) string {
	return NewResponder().Respond(ResponderInput{
		Question: question,
		Overall:  Aggregate(trips),
		Trips:    trips,
		Distance: models.DistanceRange{Min: 0, Max: 25.5},
	})
}

func TestRespondRegion(t *testing.T) {
	trips := regionTrips()

	tests := []struct {
		question string
		want     string
	}{
		{
			question: "Which region has the highest fulfillment rate?",
			want:     "Region B has the highest fulfillment rate at 95.00% (19 trips from 20 requests).",
		},
		{
			question: "Best fulfilment?",
			want:     "Region B has the highest fulfillment rate at 95.00% (19 trips from 20 requests).",
		},
		{
			// "lowest" is matched before "region": checking "region" first
			// would answer this question with the highest region.
			question: "Which region has the lowest fulfillment rate?",
			want:     "Region A has the lowest fulfillment rate at 80.00% (4 trips from 5 requests).",
		},
		{
			question: "worst FULFILLMENT",
			want:     "Region A has the lowest fulfillment rate at 80.00% (4 trips from 5 requests).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, respond(tt.question, trips))
		})
	}
}

func TestRespondRegionTieTakesFirst(t *testing.T) {
	trips := concat(
		repeat(1, types.OutcomeTrip, region("East")),
		repeat(1, types.OutcomeTrip, region("West")),
	)
	assert.Contains(t, respond("highest fulfillment region", trips), "Region East")
	assert.Contains(t, respond("lowest fulfillment", trips), "Region East")
}

func TestRespondRegionEmptyTable(t *testing.T) {
	onlyNoDrivers := repeat(2, types.OutcomeNoDriversFound)

	for _, trips := range [][]models.Trip{nil, onlyNoDrivers} {
		got := respond("Which region has the highest fulfillment rate?", trips)
		assert.Contains(t, got, "insufficient data")
	}
}

func TestRespondOverallFulfillment(t *testing.T) {
	got := respond("What is our fulfillment rate?", scenarioTrips())
	assert.Equal(t, "The overall fulfillment rate is 62.50%, based on 5 trips, 2 driver cancellations and 1 rider cancellations.", got)
}

func TestRespondAcceptance(t *testing.T) {
	trips := concat(scenarioTrips(), repeat(2, types.OutcomeTimeout))
	got := respond("acceptance?", trips)
	assert.Equal(t, "The overall acceptance rate is 50.00%, based on 5 trips and 2 timeouts.", got)
}

func TestRespondSummary(t *testing.T) {
	for _, q := range []string{"Give me a summary", "overview please"} {
		got := respond(q, scenarioTrips())

		items := []string{
			"- Total requests: 8",
			"- Total trips: 5",
			"- Fulfillment rate: 62.50%",
			"- Acceptance rate: 62.50%",
			"- Driver cancellations: 2",
			"- Rider cancellations: 1",
			"- Distance filter: 0.0 to 25.5 km",
		}
		last := -1
		for _, item := range items {
			idx := strings.Index(got, item)
			require.GreaterOrEqual(t, idx, 0, "missing %q in %q", item, got)
			assert.Greater(t, idx, last, "%q out of order", item)
			last = idx
		}
	}
}

func TestRespondDriverCancellations(t *testing.T) {
	got := respond("How many driver cancellations?", scenarioTrips())
	assert.Equal(t, "The driver cancellation rate is 25.00% (2 driver cancellations out of 8 requests).", got)
}

func TestRespondDistance(t *testing.T) {
	assert.Equal(t, "The current distance filter is 0.0 to 25.5 km.", respond("What distance is selected?", nil))
}

func TestRespondDefault(t *testing.T) {
	got := respond("hello there", scenarioTrips())
	assert.Contains(t, got, "fulfillment rate is 62.50%")
	assert.Contains(t, got, "acceptance rate is 62.50%")
	assert.Contains(t, got, "across 8 requests")
}

func TestRespondPrecedence(t *testing.T) {
	r := NewResponder()
	tests := map[string]string{
		"fulfillment and acceptance":            "fulfillment",
		"acceptance summary":                    "acceptance",
		"summary of driver cancellations":       "summary",
		"driver cancellations by distance":      "driver_cancellation",
		"distance":                              "distance",
		"rider cancellations":                   "help",
		"Driver Cancellation rate for distance": "driver_cancellation",
	}
	for q, want := range tests {
		assert.Equal(t, want, r.Topic(q), q)
	}
}

func TestRespondEmptySubsetNeverPanics(t *testing.T) {
	for _, q := range []string{"fulfillment", "lowest fulfillment", "acceptance", "summary", "driver cancellation", "distance", "?"} {
		assert.NotPanics(t, func() { _ = respond(q, nil) })
		assert.NotEmpty(t, respond(q, nil))
	}
}
