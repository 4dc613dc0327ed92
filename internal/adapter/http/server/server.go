package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/config"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/handler"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/middleware"
	wshandler "github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/ws"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	ws "github.com/Temutjin2k/ride-hail-insights/pkg/wsHub"
)

const serverIPAddress = "%s:%s"

var (
	ErrAuthRequired     = errors.New("auth service is required")
	ErrDatasetRequired  = errors.New("dataset health source is required")
	ErrServiceRequired  = errors.New("dashboard service is required")
	ErrReloaderRequired = errors.New("dataset reloader is required")
)

// Services are the collaborators the HTTP layer needs for one mode.
// Ride mode uses Dashboard, Chat and Hub; loan mode uses Loans.
type Services struct {
	Dashboard handler.DashboardService
	Chat      handler.ChatService
	Loans     handler.LoanService
	Reloader  handler.Reloader
	Health    handler.DatasetInfoer
	Auth      middleware.AuthService
	Hub       *ws.ConnectionHub
}

type API struct {
	mode   types.ServiceMode
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	health    *handler.Health
	admin     *handler.Admin
	dashboard *handler.Dashboard
	chat      *handler.Chat
	chatWS    *wshandler.ChatWsHandler
	loan      *handler.Loan
}

func New(cfg config.Config, svc Services, logger logger.Logger) (*API, error) {
	if svc.Auth == nil {
		return nil, ErrAuthRequired
	}
	if svc.Health == nil {
		return nil, ErrDatasetRequired
	}
	if svc.Reloader == nil {
		return nil, ErrReloaderRequired
	}

	routes := &handlers{
		health: handler.NewHealth(cfg.Mode.String(), svc.Health, logger),
		admin:  handler.NewAdmin(svc.Reloader, logger),
	}

	switch cfg.Mode {
	case types.RideDashboard:
		if svc.Dashboard == nil || svc.Chat == nil || svc.Hub == nil {
			return nil, ErrServiceRequired
		}
		routes.dashboard = handler.NewDashboard(svc.Dashboard, logger)
		routes.chat = handler.NewChat(svc.Chat, cfg.Session.TTL, logger)
		routes.chatWS = wshandler.NewChatWsHandler(svc.Chat, svc.Hub, logger)
	case types.LoanDashboard:
		if svc.Loans == nil {
			return nil, ErrServiceRequired
		}
		routes.loan = handler.NewLoan(svc.Loans, logger)
	default:
		return nil, fmt.Errorf("invalid mode: %s", cfg.Mode)
	}

	api := &API{
		mode:   cfg.Mode,
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(svc.Auth, cfg.Mode.String(), logger),
		addr:   fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.Port()),
		cfg:    cfg,
		log:    logger,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:              api.addr,
		Handler:           api.withMiddleware(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	return api, nil
}

// Handler returns the fully wrapped router.
func (a *API) Handler() http.Handler {
	return a.server.Handler
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(a.m.Auth(a.mux)))))
}
