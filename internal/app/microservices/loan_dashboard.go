package microservices

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Temutjin2k/ride-hail-insights/config"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/excel"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/server"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/postgres"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/service/auth"
	"github.com/Temutjin2k/ride-hail-insights/internal/service/dataset"
	"github.com/Temutjin2k/ride-hail-insights/internal/service/loan"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

const loansDataset = "loans"

type LoanDashboard struct {
	infra      *infra
	loans      *dataset.Store[models.Loan]
	scheduler  *cron.Cron
	httpServer *server.API

	cfg config.Config
	log logger.Logger
}

func NewLoanDashboard(ctx context.Context, cfg config.Config, log logger.Logger) (*LoanDashboard, error) {
	service := cfg.Mode.String()
	s := &LoanDashboard{cfg: cfg, log: log}

	infra, err := newInfra(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	s.infra = infra

	loader, err := datasetLoader(infra, cfg.Dataset.LoansPath, cfg.Dataset.LoansSheet, cfg.Dataset.LoansObject, excel.ParseLoans,
		func(db *pgxpool.Pool) dataset.Loader[models.Loan] { return postgres.NewLoanRepo(db, service) })
	if err != nil {
		s.close(ctx)
		return nil, err
	}

	s.loans = dataset.NewStore(loansDataset, loader, service, log)
	if ps := infra.publishers(); len(ps) > 0 {
		s.loans.SetPublisher(ps)
	}

	if s.scheduler, err = infra.reloadScheduler(s.loans); err != nil {
		s.close(ctx)
		return nil, err
	}

	loanService := loan.NewService(s.loans, service, log)

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		s.close(ctx)
		return nil, err
	}

	s.httpServer, err = server.New(cfg, server.Services{
		Loans:    loanService,
		Reloader: s.loans,
		Health:   loanService,
		Auth:     tokens,
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		s.close(ctx)
		return nil, err
	}

	infra.initialLoad(ctx, s.loans)

	return s, nil
}

func (s *LoanDashboard) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)

	s.httpServer.Run(ctx, errCh)
	defer func() {
		cancel()
		s.close(ctx)
		s.log.Info(ctx, "loan dashboard closed")
	}()

	if s.scheduler != nil {
		s.scheduler.Start()
	}
	s.infra.consumeReloads(ctx, s.loans)

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	s.log.Info(ctx, "Loan dashboard has been started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	}
}

func (s *LoanDashboard) close(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}

	if s.infra != nil {
		s.infra.close(ctx)
	}
}
