package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
	pgdb "github.com/Temutjin2k/ride-hail-insights/pkg/postgres"
	"github.com/Temutjin2k/ride-hail-insights/pkg/trm"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TripRepo reads the ride request table as a dataset source.
type TripRepo struct {
	db      *pgxpool.Pool
	trm     *trm.Manager
	service string
}

func NewTripRepo(db *pgxpool.Pool, service string) *TripRepo {
	return &TripRepo{
		db:      db,
		trm:     trm.New(db),
		service: service,
	}
}

func (r *TripRepo) Source() string {
	return "postgres://trips"
}

// Load reads every trip inside one read-only snapshot transaction.
func (r *TripRepo) Load(ctx context.Context) ([]models.Trip, error) {
	const op = "TripRepo.Load"

	var trips []models.Trip
	start := time.Now()
	err := r.trm.DoSnapshot(ctx, func(ctx context.Context) error {
		rows, err := TxorDB(ctx, r.db).Query(ctx, `
			SELECT
				city, vehicle_type, driver_id, trip_type, rider_id,
				country, region, COALESCE(corporate, ''), category,
				request_date, request_hour, latitude, longitude, distance_km
			FROM trips
			ORDER BY id
		`)
		if err != nil {
			return err
		}

		trips, err = pgx.CollectRows(rows, scanTrip)
		return err
	})
	metrics.RecordDatabaseQuery(r.service, "load_trips", err, time.Since(start))
	if pgdb.IsUndefinedTable(err) {
		return nil, fmt.Errorf("%s: table trips does not exist, apply migrations: %w", op, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return trips, nil
}

func scanTrip(row pgx.CollectableRow) (models.Trip, error) {
	var (
		t        models.Trip
		category string
		lat, lon *float64
	)
	if err := row.Scan(
		&t.City, &t.VehicleType, &t.DriverID, &t.TripType, &t.RiderID,
		&t.Country, &t.Region, &t.Corporate, &category,
		&t.Date, &t.Hour, &lat, &lon, &t.Distance,
	); err != nil {
		return models.Trip{}, err
	}

	outcome, err := types.ParseOutcome(category)
	if err != nil {
		return models.Trip{}, err
	}
	t.Outcome = outcome
	t.Date = models.Day(t.Date)

	if lat != nil && lon != nil {
		t.Location = &models.Location{Latitude: *lat, Longitude: *lon}
	}
	return t, nil
}
