package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
	"github.com/jackc/pgx/v5"
)

var tripColumns = []string{
	"city", "vehicle_type", "driver_id", "trip_type", "rider_id",
	"country", "region", "corporate", "category",
	"request_date", "request_hour", "latitude", "longitude", "distance_km",
}

var loanColumns = []string{
	"loan_id", "driver_email", "issued_at", "due_at",
	"amount_issued", "amount_payable", "amount_paid", "outstanding_amount",
}

// ReplaceAll swaps the whole trips table for trips in one transaction.
func (r *TripRepo) ReplaceAll(ctx context.Context, trips []models.Trip) (int64, error) {
	const op = "TripRepo.ReplaceAll"

	var n int64
	start := time.Now()
	err := r.trm.Do(ctx, func(ctx context.Context) error {
		q := TxorDB(ctx, r.db)
		if _, err := q.Exec(ctx, `DELETE FROM trips`); err != nil {
			return err
		}

		var err error
		n, err = q.CopyFrom(ctx, pgx.Identifier{"trips"}, tripColumns, pgx.CopyFromSlice(len(trips), func(i int) ([]any, error) {
			t := trips[i]
			var lat, lon *float64
			if t.Location != nil {
				lat, lon = &t.Location.Latitude, &t.Location.Longitude
			}
			return []any{
				t.City, t.VehicleType, t.DriverID, t.TripType, t.RiderID,
				t.Country, t.Region, t.Corporate, string(t.Outcome),
				t.Date, t.Hour, lat, lon, t.Distance,
			}, nil
		}))
		return err
	})
	metrics.RecordDatabaseQuery(r.service, "replace_trips", err, time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ReplaceAll swaps the whole driver_loans table for loans in one transaction.
func (r *LoanRepo) ReplaceAll(ctx context.Context, loans []models.Loan) (int64, error) {
	const op = "LoanRepo.ReplaceAll"

	var n int64
	start := time.Now()
	err := r.trm.Do(ctx, func(ctx context.Context) error {
		q := TxorDB(ctx, r.db)
		if _, err := q.Exec(ctx, `DELETE FROM driver_loans`); err != nil {
			return err
		}

		var err error
		n, err = q.CopyFrom(ctx, pgx.Identifier{"driver_loans"}, loanColumns, pgx.CopyFromSlice(len(loans), func(i int) ([]any, error) {
			l := loans[i]
			return []any{
				l.LoanID, l.DriverEmail, l.IssuedAt, l.DueAt,
				l.AmountIssued, l.AmountPayable, l.AmountPaid, l.OutstandingAmount,
			}, nil
		}))
		return err
	})
	metrics.RecordDatabaseQuery(r.service, "replace_loans", err, time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
