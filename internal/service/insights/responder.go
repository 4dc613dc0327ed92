package insights

import (
	"fmt"
	"strings"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
)

// ResponderInput is everything the local responder may look at.
type ResponderInput struct {
	Question string
	Overall  models.KPI
	Trips    []models.Trip
	Distance models.DistanceRange
}

type rule struct {
	name   string
	match  func(q string) bool
	answer func(q string, in ResponderInput) string
}

// Responder answers from the aggregated data without any network call.
// Rules are tried in order and the first match wins.
type Responder struct {
	rules    []rule
	fallback func(in ResponderInput) string
}

func NewResponder() *Responder {
	return &Responder{
		rules: []rule{
			{name: "fulfillment", match: containsAny("fulfillment", "fulfilment"), answer: fulfillmentAnswer},
			{name: "acceptance", match: containsAny("acceptance"), answer: acceptanceAnswer},
			{name: "summary", match: containsAny("summary", "overview"), answer: summaryAnswer},
			{name: "driver_cancellation", match: containsAny("driver cancell"), answer: driverCancellationAnswer},
			{name: "distance", match: containsAny("distance"), answer: distanceAnswer},
		},
		fallback: helpAnswer,
	}
}

// Respond never fails; unknown questions get the help text.
func (r *Responder) Respond(in ResponderInput) string {
	q := strings.ToLower(in.Question)
	for _, rl := range r.rules {
		if rl.match(q) {
			return rl.answer(q, in)
		}
	}
	return r.fallback(in)
}

// Topic names the rule a question would be routed to.
func (r *Responder) Topic(question string) string {
	q := strings.ToLower(question)
	for _, rl := range r.rules {
		if rl.match(q) {
			return rl.name
		}
	}
	return "help"
}

func containsAny(words ...string) func(q string) bool {
	return func(q string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}
}

func fulfillmentAnswer(q string, in ResponderInput) string {
	// "lowest" is checked first so "which region is lowest" is not read as "region"
	switch {
	case containsAny("lowest", "worst")(q):
		return regionAnswer(in.Trips, "lowest", BottomByFulfillment)
	case containsAny("region", "best", "highest")(q):
		return regionAnswer(in.Trips, "highest", TopByFulfillment)
	}
	k := in.Overall
	return fmt.Sprintf(
		"The overall fulfillment rate is %.2f%%, based on %d trips, %d driver cancellations and %d rider cancellations.",
		k.FulfillmentRate, k.Trips, k.DriverCancellations, k.RiderCancellations,
	)
}

func regionAnswer(trips []models.Trip, word string, rank func([]models.GroupKPI, int) []models.GroupKPI) string {
	table := aggregateBy(trips, types.DimensionRegion)
	if table.Len() == 0 {
		return "There is insufficient data to compare regions for the current filters."
	}
	r := rank(table.Rows, 1)[0]
	return fmt.Sprintf(
		"Region %s has the %s fulfillment rate at %.2f%% (%d trips from %d requests).",
		r.Key, word, r.FulfillmentRate, r.Trips, r.TotalRequests,
	)
}

func acceptanceAnswer(_ string, in ResponderInput) string {
	k := in.Overall
	return fmt.Sprintf(
		"The overall acceptance rate is %.2f%%, based on %d trips and %d timeouts.",
		k.AcceptanceRate, k.Trips, k.Timeouts,
	)
}

func summaryAnswer(_ string, in ResponderInput) string {
	k := in.Overall
	var b strings.Builder
	b.WriteString("Here is a summary of the current selection:\n")
	fmt.Fprintf(&b, "- Total requests: %d\n", k.TotalRequests)
	fmt.Fprintf(&b, "- Total trips: %d\n", k.Trips)
	fmt.Fprintf(&b, "- Fulfillment rate: %.2f%%\n", k.FulfillmentRate)
	fmt.Fprintf(&b, "- Acceptance rate: %.2f%%\n", k.AcceptanceRate)
	fmt.Fprintf(&b, "- Driver cancellations: %d\n", k.DriverCancellations)
	fmt.Fprintf(&b, "- Rider cancellations: %d\n", k.RiderCancellations)
	fmt.Fprintf(&b, "- Distance filter: %s", DistanceText(in.Distance))
	return b.String()
}

func driverCancellationAnswer(_ string, in ResponderInput) string {
	k := in.Overall
	return fmt.Sprintf(
		"The driver cancellation rate is %.2f%% (%d driver cancellations out of %d requests).",
		k.DriverCancellationRate, k.DriverCancellations, k.TotalRequests,
	)
}

func distanceAnswer(_ string, in ResponderInput) string {
	return fmt.Sprintf("The current distance filter is %s.", DistanceText(in.Distance))
}

func helpAnswer(in ResponderInput) string {
	k := in.Overall
	return fmt.Sprintf(
		"I can answer questions about the fulfillment rate (overall, or the best and worst region), "+
			"the acceptance rate, driver cancellations, the distance filter, or give a summary. "+
			"Right now the fulfillment rate is %.2f%% and the acceptance rate is %.2f%% across %d requests.",
		k.FulfillmentRate, k.AcceptanceRate, k.TotalRequests,
	)
}
