package server

import (
	"context"

	_ "github.com/Temutjin2k/ride-hail-insights/docs"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)

	a.setupSwaggerRoutes()
	a.setupMetricsRoute()

	// Dataset reload
	a.mux.Handle("POST /admin/dataset/reload", a.m.RequireRoles(a.routes.admin.ReloadDataset, types.AdminRole))

	switch a.mode {
	case types.RideDashboard:
		a.setupRideDashboardRoutes()
	case types.LoanDashboard:
		a.setupLoanDashboardRoutes()
	}
}

// setupRideDashboardRoutes setups routes for the trip request dashboard and its assistant
func (a *API) setupRideDashboardRoutes() {
	d := a.routes.dashboard
	a.mux.HandleFunc("GET /dashboard/options", d.GetOptions)                 // Filter choices
	a.mux.HandleFunc("GET /dashboard/kpis", d.GetKPIs)                       // Overall KPI cards
	a.mux.HandleFunc("GET /dashboard/trips", d.GetTrips)                     // Filtered rows
	a.mux.HandleFunc("GET /dashboard/breakdown/{dimension}", d.GetBreakdown) // Grouped KPI table
	a.mux.HandleFunc("GET /dashboard/hourly", d.GetHourly)                   // Hour x category pivot
	a.mux.HandleFunc("GET /dashboard/locations", d.GetLocations)             // Map points
	a.mux.HandleFunc("GET /dashboard/summary", d.GetSummary)                 // Compact summary

	c := a.routes.chat
	a.mux.HandleFunc("POST /sessions", c.CreateSession)
	a.mux.HandleFunc("GET /sessions/{session_id}/history", c.GetHistory)
	a.mux.HandleFunc("POST /sessions/{session_id}/ask", c.Ask)
	a.mux.HandleFunc("DELETE /sessions/{session_id}", c.EndSession)
	a.mux.HandleFunc("GET /ws/sessions/{session_id}", a.routes.chatWS.HandleChat) // WebSocket chat
}

// setupLoanDashboardRoutes setups routes for the loan portfolio dashboard
func (a *API) setupLoanDashboardRoutes() {
	l := a.routes.loan
	a.mux.HandleFunc("GET /loans/options", l.GetOptions)
	a.mux.HandleFunc("GET /loans/kpis", l.GetKPIs)
	a.mux.HandleFunc("GET /loans/daily-issued", l.GetDailyIssued)
	a.mux.HandleFunc("GET /loans/records", l.GetRecords)
}

// setupSwaggerRoutes configures Swagger UI endpoints based on service mode
func (a *API) setupSwaggerRoutes() {
	var instanceName string

	switch a.mode {
	case types.RideDashboard:
		instanceName = "ride"
	case types.LoanDashboard:
		instanceName = "loan"
	default:
		a.log.Warn(wrap.WithAction(context.Background(), "setup swagger routes"), "unknown service mode for swagger setup", "mode", a.mode)
		return
	}

	// Swagger UI endpoint
	swaggerURL := httpSwagger.InstanceName(instanceName)
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler(swaggerURL))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func (a *API) setupMetricsRoute() {
	a.mux.Handle("GET /metrics", promhttp.Handler())
}
