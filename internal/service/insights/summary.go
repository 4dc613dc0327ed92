package insights

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
)

// RankSize is the length of the top and bottom driver lists.
const RankSize = 10

// Summarize condenses a filtered subset into the answering context.
// It is a pure function of its arguments.
func Summarize(trips []models.Trip, overall models.KPI, distance models.DistanceRange) models.Summary {
	drivers := aggregateBy(trips, types.DimensionDriver)
	return models.Summary{
		OverallKPIs:    overall,
		RegionKPIs:     aggregateBy(trips, types.DimensionRegion).Rows,
		TopDrivers:     TopByFulfillment(drivers.Rows, RankSize),
		BottomDrivers:  BottomByFulfillment(drivers.Rows, RankSize),
		CorporateKPIs:  aggregateBy(trips, types.DimensionCorporate).Rows,
		TotalRows:      len(trips),
		DistanceFilter: DistanceText(distance),
		Hourly:         HourlyPivot(trips),
	}
}

// EncodeSummary renders the summary as compact JSON.
func EncodeSummary(s models.Summary) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	return string(b), nil
}

// DistanceText formats a range as "{min} to {max} km".
func DistanceText(r models.DistanceRange) string {
	return fmt.Sprintf("%s to %s km", FormatFloat(r.Min), FormatFloat(r.Max))
}

// FormatFloat prints the shortest exact representation and always keeps a
// fractional part, so 25 becomes "25.0" and 25.5 stays "25.5".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
