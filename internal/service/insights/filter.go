package insights

import (
	"slices"
	"sort"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
)

// Apply returns the trips that satisfy every active predicate of f, in
// dataset order. An empty result is valid.
func Apply(trips []models.Trip, f models.TripFilter) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if Match(t, f) {
			out = append(out, t)
		}
	}
	return out
}

// Match reports whether a single trip passes the filter.
func Match(t models.Trip, f models.TripFilter) bool {
	return inSet(f.Cities, t.City) &&
		inSet(f.VehicleTypes, t.VehicleType) &&
		equals(f.DriverID, t.DriverID) &&
		equals(f.TripType, t.TripType) &&
		equals(f.RiderID, t.RiderID) &&
		equals(f.Country, t.Country) &&
		equals(f.Region, t.Region) &&
		equals(f.Corporate, t.Corporate) &&
		inDates(f.DateFrom, f.DateTo, t.Date) &&
		(f.Distance == nil || f.Distance.Contains(t.Distance))
}

// Located keeps the rows that can be drawn on a map.
func Located(trips []models.Trip) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if t.Location != nil {
			out = append(out, t)
		}
	}
	return out
}

func inSet(selected []string, v string) bool {
	if len(selected) == 0 || slices.Contains(selected, models.All) {
		return true
	}
	return slices.Contains(selected, v)
}

func equals(selected, v string) bool {
	return models.IsWildcard(selected) || selected == v
}

// inDates compares calendar days, both bounds inclusive. A zero bound is open.
func inDates(from, to, d time.Time) bool {
	day := models.Day(d)
	if !from.IsZero() && day.Before(models.Day(from)) {
		return false
	}
	if !to.IsZero() && day.After(models.Day(to)) {
		return false
	}
	return true
}

// DistanceBounds is the min..max distance of trips, zero for an empty set.
func DistanceBounds(trips []models.Trip) models.DistanceRange {
	if len(trips) == 0 {
		return models.DistanceRange{}
	}
	r := models.DistanceRange{Min: trips[0].Distance, Max: trips[0].Distance}
	for _, t := range trips[1:] {
		r.Min = min(r.Min, t.Distance)
		r.Max = max(r.Max, t.Distance)
	}
	return r
}

// Options lists the distinct sidebar values of the full dataset.
func Options(trips []models.Trip) models.FilterOptions {
	var (
		cities, vehicles, drivers, tripTypes = set{}, set{}, set{}, set{}
		riders, countries, regions, corps    = set{}, set{}, set{}, set{}
		opts                                 models.FilterOptions
	)
	for i, t := range trips {
		cities.add(t.City)
		vehicles.add(t.VehicleType)
		drivers.add(t.DriverID)
		tripTypes.add(t.TripType)
		riders.add(t.RiderID)
		countries.add(t.Country)
		regions.add(t.Region)
		corps.add(t.Corporate)

		day := models.Day(t.Date)
		if i == 0 || day.Before(opts.DateMin) {
			opts.DateMin = day
		}
		if i == 0 || day.After(opts.DateMax) {
			opts.DateMax = day
		}
	}
	opts.Cities = cities.sorted()
	opts.VehicleTypes = vehicles.sorted()
	opts.Drivers = drivers.sorted()
	opts.TripTypes = tripTypes.sorted()
	opts.Riders = riders.sorted()
	opts.Countries = countries.sorted()
	opts.Regions = regions.sorted()
	opts.Corporates = corps.sorted()
	opts.Distance = DistanceBounds(trips)
	return opts
}

type set map[string]struct{}

func (s set) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
