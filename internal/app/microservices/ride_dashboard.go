package microservices

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Temutjin2k/ride-hail-insights/config"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/excel"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/server"
	wshandler "github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/ws"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/llm"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/postgres"
	redisadapter "github.com/Temutjin2k/ride-hail-insights/internal/adapter/redis"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/service/auth"
	"github.com/Temutjin2k/ride-hail-insights/internal/service/dataset"
	"github.com/Temutjin2k/ride-hail-insights/internal/service/insights"
	"github.com/Temutjin2k/ride-hail-insights/internal/service/session"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	redisclient "github.com/Temutjin2k/ride-hail-insights/pkg/redis"
	ws "github.com/Temutjin2k/ride-hail-insights/pkg/wsHub"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

const tripsDataset = "trips"

type RideDashboard struct {
	infra      *infra
	redis      *redisclient.Client
	gemini     *llm.Gemini
	trips      *dataset.Store[models.Trip]
	sessions   *session.Store
	hub        *ws.ConnectionHub
	scheduler  *cron.Cron
	httpServer *server.API

	cfg config.Config
	log logger.Logger
}

func NewRideDashboard(ctx context.Context, cfg config.Config, log logger.Logger) (*RideDashboard, error) {
	service := cfg.Mode.String()
	s := &RideDashboard{cfg: cfg, log: log}

	infra, err := newInfra(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	s.infra = infra

	loader, err := datasetLoader(infra, cfg.Dataset.TripsPath, cfg.Dataset.TripsSheet, cfg.Dataset.TripsObject, excel.ParseTrips,
		func(db *pgxpool.Pool) dataset.Loader[models.Trip] { return postgres.NewTripRepo(db, service) })
	if err != nil {
		s.close(ctx)
		return nil, err
	}

	// dataset + reload fan-out
	s.hub = ws.NewConnHub(service, log)
	s.trips = dataset.NewStore(tripsDataset, loader, service, log)
	s.trips.SetPublisher(infra.publishers(wshandler.NewReloadNotifier(s.hub, log)))

	if s.scheduler, err = infra.reloadScheduler(s.trips); err != nil {
		s.close(ctx)
		return nil, err
	}

	// summary cache
	var cache insights.SummaryCache
	if cfg.Redis.Enabled {
		s.redis, err = redisclient.New(ctx, cfg.Redis)
		if err != nil {
			log.Error(ctx, "Failed to setup redis", err)
			s.close(ctx)
			return nil, err
		}
		cache = redisadapter.NewSummaryCache(s.redis.Client, cfg.Redis.SummaryTTL)
	}

	remote, err := s.remoteAnswerer(ctx)
	if err != nil {
		log.Error(ctx, "Failed to setup remote answerer", err)
		s.close(ctx)
		return nil, err
	}

	assistant := insights.NewAssistant(remote, insights.NewResponder(), insights.AssistantConfig{
		Service:     service,
		Timeout:     cfg.Assistant.Timeout,
		HistorySize: cfg.Assistant.HistorySize,
	}, log)

	s.sessions = session.New(cfg.Session.TTL, service, log)
	insightsService := insights.NewService(s.trips, s.sessions, cache, assistant, service, log)

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		s.close(ctx)
		return nil, err
	}

	s.httpServer, err = server.New(cfg, server.Services{
		Dashboard: insightsService,
		Chat:      insightsService,
		Reloader:  s.trips,
		Health:    insightsService,
		Auth:      tokens,
		Hub:       s.hub,
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		s.close(ctx)
		return nil, err
	}

	infra.initialLoad(ctx, s.trips)

	return s, nil
}

// remoteAnswerer returns nil when no provider is configured, leaving
// every question to the local responder.
func (s *RideDashboard) remoteAnswerer(ctx context.Context) (insights.RemoteAnswerer, error) {
	switch s.cfg.Assistant.Provider {
	case config.ProviderOpenAI:
		o, err := llm.NewOpenAI(llm.OpenAIOptions{
			APIKey:       s.cfg.Assistant.APIKey,
			Model:        s.cfg.Assistant.Model,
			BaseURL:      s.cfg.Assistant.BaseURL,
			Organization: s.cfg.Assistant.Organization,
			Temperature:  s.cfg.Assistant.Temperature,
		})
		if err != nil {
			return nil, err
		}
		return o, nil
	case config.ProviderGemini:
		g, err := llm.NewGemini(ctx, s.cfg.Assistant.APIKey, s.cfg.Assistant.Model)
		if err != nil {
			return nil, err
		}
		s.gemini = g
		return g, nil
	default:
		return nil, nil
	}
}

func (s *RideDashboard) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)

	s.httpServer.Run(ctx, errCh)
	defer func() {
		cancel()
		s.close(ctx)
		s.log.Info(ctx, "ride dashboard closed")
	}()

	if s.cfg.Session.SweepInterval > 0 {
		go s.sessions.Run(ctx, s.cfg.Session.SweepInterval)
	}
	if s.scheduler != nil {
		s.scheduler.Start()
	}
	s.infra.consumeReloads(ctx, s.trips)

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	s.log.Info(ctx, "Ride dashboard has been started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	}
}

func (s *RideDashboard) close(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}

	if s.hub != nil {
		s.hub.Close()
	}

	if s.gemini != nil {
		if err := s.gemini.Close(); err != nil {
			s.log.Warn(ctx, "Failed to close gemini client", "error", err.Error())
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.Warn(ctx, "Failed to close redis client", "error", err.Error())
		}
	}

	if s.infra != nil {
		s.infra.close(ctx)
	}
}
