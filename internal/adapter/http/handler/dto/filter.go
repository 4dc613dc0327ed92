package dto

import (
	"net/url"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
)

// TripFilter reads the sidebar selection from the query string.
func TripFilter(qs url.Values, v *validator.Validator) models.TripFilter {
	f := models.TripFilter{
		Cities:       ReadList(qs, "city"),
		VehicleTypes: ReadList(qs, "vehicle_type"),
		DriverID:     ReadString(qs, "driver_id", models.All),
		TripType:     ReadString(qs, "trip_type", models.All),
		RiderID:      ReadString(qs, "rider_id", models.All),
		Country:      ReadString(qs, "country", models.All),
		Region:       ReadString(qs, "region", models.All),
		Corporate:    ReadString(qs, "corporate", models.All),
		DateFrom:     ReadDate(qs, "date_from", v),
		DateTo:       ReadDate(qs, "date_to", v),
	}

	dmin, hasMin := ReadFloat(qs, "distance_min", v)
	dmax, hasMax := ReadFloat(qs, "distance_max", v)
	switch {
	case hasMin && hasMax:
		f.Distance = &models.DistanceRange{Min: dmin, Max: dmax}
	case hasMin:
		v.AddError("distance_max", "must be provided together with distance_min")
	case hasMax:
		v.AddError("distance_min", "must be provided together with distance_max")
	}

	f.Validate(v)
	return f
}

func LoanFilter(qs url.Values, v *validator.Validator) models.LoanFilter {
	f := models.LoanFilter{
		LoanID:      ReadString(qs, "loan_id", models.All),
		DriverEmail: ReadString(qs, "driver_email", models.All),
		IssuedFrom:  ReadDate(qs, "issued_from", v),
		IssuedTo:    ReadDate(qs, "issued_to", v),
	}
	f.Validate(v)
	return f
}

// Page reads page, page_size and sort.
func Page(qs url.Values, safelist []string, v *validator.Validator) models.Pagination {
	p := models.NewPagination(
		ReadInt(qs, "page", 1, v),
		ReadInt(qs, "page_size", 50, v),
		ReadString(qs, "sort", ""),
		safelist...,
	)
	p.Validate(v)
	return p
}
