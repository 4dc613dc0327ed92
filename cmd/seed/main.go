package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/config"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/excel"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/postgres"
	"github.com/Temutjin2k/ride-hail-insights/pkg/configparser"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	pgdb "github.com/Temutjin2k/ride-hail-insights/pkg/postgres"
)

var (
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
	tripsPath  = flag.String("trips", "", "Trips workbook, defaults to DATASET_TRIPS_PATH")
	loansPath  = flag.String("loans", "", "Loans workbook, defaults to DATASET_LOANS_PATH")
	timeout    = flag.Duration("timeout", 2*time.Minute, "Seeding timeout")
)

// seed copies the Excel exports into the postgres dataset tables.
func main() {
	flag.Parse()

	log := logger.InitLogger("seed", logger.LevelInfo)
	ctx, cancel := context.WithTimeout(wrap.WithAction(context.Background(), "seed"), *timeout)
	defer cancel()

	var cfg config.Config
	if err := configparser.LoadAndParseYaml(*configPath, &cfg); err != nil {
		log.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if *tripsPath == "" {
		*tripsPath = cfg.Dataset.TripsPath
	}
	if *loansPath == "" {
		*loansPath = cfg.Dataset.LoansPath
	}

	db, err := pgdb.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Pool.Close()

	trips, err := excel.NewFileLoader(*tripsPath, cfg.Dataset.TripsSheet, excel.ParseTrips).Load(ctx)
	if err != nil {
		log.Error(wrap.WithDataset(ctx, "trips"), "failed to read trips", err, "path", *tripsPath)
		os.Exit(1)
	}
	n, err := postgres.NewTripRepo(db.Pool, "seed").ReplaceAll(ctx, trips)
	if err != nil {
		log.Error(wrap.WithDataset(ctx, "trips"), "failed to write trips", err)
		os.Exit(1)
	}
	log.Info(wrap.WithDataset(ctx, "trips"), "trips seeded", "rows", n)

	loans, err := excel.NewFileLoader(*loansPath, cfg.Dataset.LoansSheet, excel.ParseLoans).Load(ctx)
	if err != nil {
		log.Error(wrap.WithDataset(ctx, "loans"), "failed to read loans", err, "path", *loansPath)
		os.Exit(1)
	}
	n, err = postgres.NewLoanRepo(db.Pool, "seed").ReplaceAll(ctx, loans)
	if err != nil {
		log.Error(wrap.WithDataset(ctx, "loans"), "failed to write loans", err)
		os.Exit(1)
	}
	log.Info(wrap.WithDataset(ctx, "loans"), "loans seeded", "rows", n)
}
