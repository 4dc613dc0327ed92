package insights

import (
	"cmp"
	"math"
	"slices"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
)

// RoundTo2 rounds half away from zero to two decimals.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rate is part/whole as a rounded percentage; a zero whole yields 0.
func Rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return RoundTo2(float64(part) / float64(whole) * 100)
}

type counts struct {
	total, trips, driverCancel, riderCancel, timeouts, noDrivers int
}

func (c *counts) add(o types.Outcome) {
	c.total++
	switch o {
	case types.OutcomeTrip:
		c.trips++
	case types.OutcomeDriverCancellation:
		c.driverCancel++
	case types.OutcomeRiderCancellation:
		c.riderCancel++
	case types.OutcomeTimeout:
		c.timeouts++
	case types.OutcomeNoDriversFound:
		c.noDrivers++
	}
}

func (c counts) fulfillmentBase() int {
	return c.trips + c.driverCancel + c.riderCancel
}

func (c counts) acceptanceBase() int {
	return c.fulfillmentBase() + c.timeouts
}

// Aggregate computes the dashboard-wide KPI record of a subset.
func Aggregate(trips []models.Trip) models.KPI {
	var c counts
	for _, t := range trips {
		c.add(t.Outcome)
	}
	return models.KPI{
		TotalRequests:          c.total,
		Trips:                  c.trips,
		DriverCancellations:    c.driverCancel,
		RiderCancellations:     c.riderCancel,
		Timeouts:               c.timeouts,
		NoDriversFound:         c.noDrivers,
		FulfillmentRate:        Rate(c.trips, c.fulfillmentBase()),
		AcceptanceRate:         Rate(c.trips, c.acceptanceBase()),
		DriverCancellationRate: Rate(c.driverCancel, c.total),
		RiderCancellationRate:  Rate(c.riderCancel, c.total),
		TimeoutRate:            Rate(c.timeouts, c.total),
	}
}

// AggregateBy builds the breakdown table of a dimension. No Drivers Found
// rows are dropped before grouping; groups keep first-seen order.
func AggregateBy(trips []models.Trip, dim types.Dimension) (models.GroupedTable, error) {
	if _, err := types.ParseDimension(dim.String()); err != nil {
		return models.GroupedTable{}, err
	}
	return aggregateBy(trips, dim), nil
}

func aggregateBy(trips []models.Trip, dim types.Dimension) models.GroupedTable {
	var (
		order []string
		index = make(map[string]*counts)
	)
	for _, t := range trips {
		if t.Outcome == types.OutcomeNoDriversFound {
			continue
		}
		key := t.Field(dim)
		c, ok := index[key]
		if !ok {
			c = &counts{}
			index[key] = c
			order = append(order, key)
		}
		c.add(t.Outcome)
	}

	rows := make([]models.GroupKPI, 0, len(order))
	for _, key := range order {
		rows = append(rows, groupRow(key, *index[key]))
	}
	return models.GroupedTable{Dimension: dim, Rows: rows}
}

func groupRow(key string, c counts) models.GroupKPI {
	// total is clamped to 1 so an empty group reads 0 instead of failing
	total := max(c.total, 1)
	return models.GroupKPI{
		Key:                    key,
		TotalRequests:          c.total,
		Trips:                  c.trips,
		DriverCancellations:    c.driverCancel,
		RiderCancellations:     c.riderCancel,
		Timeouts:               c.timeouts,
		FulfillmentRate:        Rate(c.trips, c.fulfillmentBase()),
		AcceptanceRate:         Rate(c.trips, c.acceptanceBase()),
		DriverCancellationRate: Rate(c.driverCancel, total),
		RiderCancellationRate:  Rate(c.riderCancel, total),
		TimeoutRate:            Rate(c.timeouts, total),
		InsufficientData:       c.total == 0 || c.fulfillmentBase() == 0,
	}
}

// TopByFulfillment returns up to n rows with the highest fulfillment rate.
// Ties keep table order.
func TopByFulfillment(rows []models.GroupKPI, n int) []models.GroupKPI {
	return rankBy(rows, n, func(a, b models.GroupKPI) int {
		return cmp.Compare(b.FulfillmentRate, a.FulfillmentRate)
	})
}

// BottomByFulfillment returns up to n rows with the lowest fulfillment rate.
// Ties keep table order.
func BottomByFulfillment(rows []models.GroupKPI, n int) []models.GroupKPI {
	return rankBy(rows, n, func(a, b models.GroupKPI) int {
		return cmp.Compare(a.FulfillmentRate, b.FulfillmentRate)
	})
}

func rankBy(rows []models.GroupKPI, n int, cmpFn func(a, b models.GroupKPI) int) []models.GroupKPI {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, cmpFn)
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	if out == nil {
		out = []models.GroupKPI{}
	}
	return out
}

// HourlyPivot counts rows per hour and outcome. Only hours present in the
// subset appear, ascending; every outcome is present in each row.
func HourlyPivot(trips []models.Trip) []models.HourlyCounts {
	byHour := make(map[int]map[types.Outcome]int)
	for _, t := range trips {
		m, ok := byHour[t.Hour]
		if !ok {
			m = make(map[types.Outcome]int, len(types.Outcomes()))
			for _, o := range types.Outcomes() {
				m[o] = 0
			}
			byHour[t.Hour] = m
		}
		m[t.Outcome]++
	}

	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	slices.Sort(hours)

	out := make([]models.HourlyCounts, 0, len(hours))
	for _, h := range hours {
		out = append(out, models.HourlyCounts{Hour: h, Counts: byHour[h]})
	}
	return out
}
