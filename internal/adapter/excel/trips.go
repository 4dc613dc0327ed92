package excel

import (
	"fmt"
	"math"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/xuri/excelize/v2"
)

const (
	colCity        column = "city"
	colVehicleType column = "vehicle_type"
	colDriverID    column = "driver_id"
	colTripType    column = "trip_type"
	colRiderID     column = "rider_id"
	colCountry     column = "country"
	colRegion      column = "region"
	colCorporate   column = "corporate"
	colCategory    column = "category"
	colDate        column = "date"
	colHour        column = "hour"
	colLatitude    column = "latitude"
	colLongitude   column = "longitude"
	colDistance    column = "distance"
)

var tripAliases = map[string]column{
	"city":             colCity,
	"vehicletype":      colVehicleType,
	"vehicle":          colVehicleType,
	"driverid":         colDriverID,
	"driver":           colDriverID,
	"triptype":         colTripType,
	"riderid":          colRiderID,
	"rider":            colRiderID,
	"country":          colCountry,
	"region":           colRegion,
	"corporate":        colCorporate,
	"corporateaccount": colCorporate,
	"category":         colCategory,
	"outcome":          colCategory,
	"date":             colDate,
	"requestdate":      colDate,
	"hour":             colHour,
	"requesthour":      colHour,
	"latitude":         colLatitude,
	"lat":              colLatitude,
	"longitude":        colLongitude,
	"lon":              colLongitude,
	"lng":              colLongitude,
	"distance":         colDistance,
	"distancekm":       colDistance,
}

var tripRequired = []column{
	colCity, colVehicleType, colDriverID, colTripType, colRiderID, colCountry,
	colRegion, colCorporate, colCategory, colDate, colHour, colDistance,
}

// ParseTrips reads the ride request export. Coordinates are optional per
// row; every other column is required in the header.
func ParseTrips(f *excelize.File, sheet string) ([]models.Trip, error) {
	all, err := rows(f, sheet)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: sheet has no header", types.ErrMissingColumn)
	}

	h, err := readHeader(all[0], tripAliases, tripRequired)
	if err != nil {
		return nil, err
	}

	trips := make([]models.Trip, 0, len(all)-1)
	err = each(all, h, func(r record) error {
		t, err := parseTrip(r)
		if err != nil {
			return err
		}
		trips = append(trips, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func parseTrip(r record) (models.Trip, error) {
	outcome, err := types.ParseOutcome(r.str(colCategory))
	if err != nil {
		return models.Trip{}, r.malformed(colCategory, err)
	}

	date, err := r.date(colDate)
	if err != nil {
		return models.Trip{}, err
	}

	hour, err := r.float(colHour)
	if err != nil {
		return models.Trip{}, err
	}
	if hour != math.Trunc(hour) || hour < 0 || hour > 23 {
		return models.Trip{}, r.malformed(colHour, fmt.Errorf("hour %v out of range 0-23", hour))
	}

	distance, err := r.float(colDistance)
	if err != nil {
		return models.Trip{}, err
	}

	t := models.Trip{
		City:        r.str(colCity),
		VehicleType: r.str(colVehicleType),
		DriverID:    r.str(colDriverID),
		TripType:    r.str(colTripType),
		RiderID:     r.str(colRiderID),
		Country:     r.str(colCountry),
		Region:      r.str(colRegion),
		Corporate:   r.str(colCorporate),
		Outcome:     outcome,
		Date:        models.Day(date),
		Hour:        int(hour),
		Distance:    distance,
	}

	if r.has(colLatitude) && r.has(colLongitude) {
		lat, okLat, err := r.optionalFloat(colLatitude)
		if err != nil {
			return models.Trip{}, err
		}
		lon, okLon, err := r.optionalFloat(colLongitude)
		if err != nil {
			return models.Trip{}, err
		}
		if okLat && okLon {
			t.Location = &models.Location{Latitude: lat, Longitude: lon}
		}
	}
	return t, nil
}
