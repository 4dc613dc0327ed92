package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/internal/service/insights"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
	"github.com/paulmach/orb/geojson"
)

type DashboardService interface {
	Options(ctx context.Context) (models.FilterOptions, error)
	Dataset(ctx context.Context) (models.DatasetInfo, error)
	Overview(ctx context.Context, f models.TripFilter) (models.KPI, error)
	Breakdown(ctx context.Context, f models.TripFilter, dim types.Dimension, sortBy string, limit int) (models.GroupedTable, error)
	Trips(ctx context.Context, f models.TripFilter, page models.Pagination) ([]models.Trip, models.Metadata, error)
	Locations(ctx context.Context, f models.TripFilter) (*geojson.FeatureCollection, error)
	Hourly(ctx context.Context, f models.TripFilter) ([]models.HourlyCounts, error)
	Summary(ctx context.Context, f models.TripFilter) (models.Summary, error)
}

type Dashboard struct {
	s DashboardService
	l logger.Logger
}

func NewDashboard(s DashboardService, l logger.Logger) *Dashboard {
	return &Dashboard{s: s, l: l}
}

// filter parses the query string filter and writes a 422 when invalid.
func (h *Dashboard) filter(w http.ResponseWriter, r *http.Request, v *validator.Validator) (models.TripFilter, bool) {
	f := dto.TripFilter(r.URL.Query(), v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return f, false
	}
	return f, true
}

// GetOptions godoc
// @Summary      Filter options
// @Description  Distinct values of every sidebar filter plus the date and distance bounds
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  models.FilterOptions
// @Failure      503  {object}  map[string]string
// @Router       /dashboard/options [get]
func (h *Dashboard) GetOptions(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_get_options")

	opts, err := h.s.Options(ctx)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to get filter options", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, opts)
}

// GetKPIs godoc
// @Summary      Overall KPIs
// @Description  Counts and rates of the filtered trip requests
// @Tags         Dashboard
// @Produce      json
// @Param        city          query  []string  false  "City (repeatable)"
// @Param        vehicle_type  query  []string  false  "Vehicle type (repeatable)"
// @Param        driver_id     query  string    false  "Driver ID or All"
// @Param        region        query  string    false  "Region or All"
// @Param        date_from     query  string    false  "YYYY-MM-DD"
// @Param        date_to       query  string    false  "YYYY-MM-DD"
// @Param        distance_min  query  number    false  "Minimum distance, km"
// @Param        distance_max  query  number    false  "Maximum distance, km"
// @Success      200  {object}  map[string]any
// @Failure      422  {object}  map[string]any
// @Router       /dashboard/kpis [get]
func (h *Dashboard) GetKPIs(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_get_kpis")

	f, ok := h.filter(w, r, validator.New())
	if !ok {
		return
	}

	kpi, err := h.s.Overview(ctx, f)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to compute kpis", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, envelope{"kpis": kpi})
}

// GetBreakdown godoc
// @Summary      Grouped KPI table
// @Description  KPIs per driver, rider, region or corporate. No Drivers Found rows are excluded.
// @Tags         Dashboard
// @Produce      json
// @Param        dimension  path   string  true   "driver | rider | region | corporate"
// @Param        sort       query  string  false  "fulfillment_desc | fulfillment_asc"
// @Param        limit      query  int     false  "Maximum rows, 0 keeps all"
// @Success      200  {object}  models.GroupedTable
// @Failure      400  {object}  map[string]string
// @Router       /dashboard/breakdown/{dimension} [get]
func (h *Dashboard) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_get_breakdown")

	v := validator.New()
	qs := r.URL.Query()

	dim, err := types.ParseDimension(r.PathValue("dimension"))
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	sortBy := dto.ReadString(qs, "sort", insights.SortTableOrder)
	limit := dto.ReadInt(qs, "limit", 0, v)
	v.Check(validator.PermittedValue(sortBy, insights.SortTableOrder, insights.SortFulfillmentDesc, insights.SortFulfillmentAsc), "sort", "must be fulfillment_desc or fulfillment_asc")
	v.Check(limit >= 0, "limit", "must not be negative")

	f, ok := h.filter(w, r, v)
	if !ok {
		return
	}

	table, err := h.s.Breakdown(ctx, f, dim, sortBy, limit)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to compute breakdown", err)
		return
	}

	h.l.Debug(ctx, "computed breakdown", "dimension", dim, "rows", table.Len())
	writeOrLog(w, r, h.l, http.StatusOK, table)
}

// GetTrips godoc
// @Summary      Filtered trip rows
// @Tags         Dashboard
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size (max 500)"
// @Param        sort       query  string  false  "date | -date | distance | -distance | hour | -hour"
// @Success      200  {object}  map[string]any
// @Failure      422  {object}  map[string]any
// @Router       /dashboard/trips [get]
func (h *Dashboard) GetTrips(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_get_trips")

	v := validator.New()
	page := dto.Page(r.URL.Query(), insights.TripSortSafelist, v)
	f, ok := h.filter(w, r, v)
	if !ok {
		return
	}

	trips, meta, err := h.s.Trips(ctx, f, page)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to list trips", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, envelope{"trips": trips, "metadata": meta})
}

// GetLocations godoc
// @Summary      Map points
// @Description  Filtered rows that carry coordinates, as a GeoJSON FeatureCollection
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /dashboard/locations [get]
func (h *Dashboard) GetLocations(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_get_locations")

	f, ok := h.filter(w, r, validator.New())
	if !ok {
		return
	}

	fc, err := h.s.Locations(ctx, f)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to build locations", err)
		return
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		h.l.Error(ctx, "failed to encode geojson", err)
		internalErrorResponse(w, "failed to encode locations")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// GetHourly godoc
// @Summary      Hour x category pivot
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /dashboard/hourly [get]
func (h *Dashboard) GetHourly(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_get_hourly")

	f, ok := h.filter(w, r, validator.New())
	if !ok {
		return
	}

	hourly, err := h.s.Hourly(ctx, f)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to build hourly pivot", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, envelope{"hourly": hourly})
}

// GetSummary godoc
// @Summary      Assistant summary
// @Description  The compact summary handed to the remote answerer
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  models.Summary
// @Router       /dashboard/summary [get]
func (h *Dashboard) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_get_summary")

	f, ok := h.filter(w, r, validator.New())
	if !ok {
		return
	}

	summary, err := h.s.Summary(ctx, f)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to build summary", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, summary)
}
