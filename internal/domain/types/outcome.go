package types

import (
	"fmt"
	"strings"
)

// Outcome is the closed set of things that can happen to a ride request.
type Outcome string

const (
	OutcomeTrip               Outcome = "Trips"
	OutcomeDriverCancellation Outcome = "Driver Cancellation"
	OutcomeRiderCancellation  Outcome = "Rider Cancellation"
	OutcomeNoDriversFound     Outcome = "No Drivers Found"
	OutcomeTimeout            Outcome = "Timeout"
)

// Outcomes returns every outcome in display order.
func Outcomes() []Outcome {
	return []Outcome{
		OutcomeTrip,
		OutcomeDriverCancellation,
		OutcomeRiderCancellation,
		OutcomeNoDriversFound,
		OutcomeTimeout,
	}
}

func (o Outcome) String() string {
	return string(o)
}

func (o Outcome) Valid() bool {
	switch o {
	case OutcomeTrip, OutcomeDriverCancellation, OutcomeRiderCancellation, OutcomeNoDriversFound, OutcomeTimeout:
		return true
	}
	return false
}

// ParseOutcome matches a category label case-insensitively.
// "Trip" is accepted as an alias of "Trips".
func ParseOutcome(s string) (Outcome, error) {
	v := strings.ToLower(strings.Join(strings.Fields(s), " "))
	if v == "trip" {
		return OutcomeTrip, nil
	}
	for _, o := range Outcomes() {
		if strings.ToLower(string(o)) == v {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
}

// Dimension is a grouping key for the breakdown tables.
type Dimension string

const (
	DimensionDriver    Dimension = "driver"
	DimensionRider     Dimension = "rider"
	DimensionRegion    Dimension = "region"
	DimensionCorporate Dimension = "corporate"
)

func (d Dimension) String() string {
	return string(d)
}

func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(strings.ToLower(strings.TrimSpace(s))); d {
	case DimensionDriver, DimensionRider, DimensionRegion, DimensionCorporate:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}
