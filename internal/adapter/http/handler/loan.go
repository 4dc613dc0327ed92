package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/service/loan"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
)

type LoanService interface {
	KPIs(ctx context.Context, f models.LoanFilter) (models.LoanKPI, error)
	Daily(ctx context.Context, f models.LoanFilter) ([]models.DailyIssued, error)
	Records(ctx context.Context, f models.LoanFilter, page models.Pagination) ([]models.Loan, models.Metadata, error)
	Options(ctx context.Context) (models.LoanOptions, error)
}

type Loan struct {
	s LoanService
	l logger.Logger
}

func NewLoan(s LoanService, l logger.Logger) *Loan {
	return &Loan{s: s, l: l}
}

func (h *Loan) filter(w http.ResponseWriter, r *http.Request, v *validator.Validator) (models.LoanFilter, bool) {
	f := dto.LoanFilter(r.URL.Query(), v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return f, false
	}
	return f, true
}

// GetKPIs godoc
// @Summary      Loan scorecards
// @Tags         Loans
// @Produce      json
// @Param        loan_id       query  string  false  "Loan ID or All"
// @Param        driver_email  query  string  false  "Driver email or All"
// @Param        issued_from   query  string  false  "YYYY-MM-DD"
// @Param        issued_to     query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  models.LoanKPI
// @Failure      422  {object}  map[string]any
// @Router       /loans/kpis [get]
func (h *Loan) GetKPIs(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "loans_get_kpis")

	f, ok := h.filter(w, r, validator.New())
	if !ok {
		return
	}

	kpi, err := h.s.KPIs(ctx, f)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to compute loan kpis", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, kpi)
}

// GetDailyIssued godoc
// @Summary      Amount issued per day
// @Tags         Loans
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /loans/daily-issued [get]
func (h *Loan) GetDailyIssued(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "loans_get_daily_issued")

	f, ok := h.filter(w, r, validator.New())
	if !ok {
		return
	}

	daily, err := h.s.Daily(ctx, f)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to compute daily series", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, envelope{"daily_issued": daily})
}

// GetRecords godoc
// @Summary      Filtered loan rows
// @Tags         Loans
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size (max 500)"
// @Param        sort       query  string  false  "date_of_issue | -date_of_issue | outstanding | -outstanding | date_due | -date_due"
// @Success      200  {object}  map[string]any
// @Router       /loans/records [get]
func (h *Loan) GetRecords(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "loans_get_records")

	v := validator.New()
	page := dto.Page(r.URL.Query(), loan.LoanSortSafelist, v)
	f, ok := h.filter(w, r, v)
	if !ok {
		return
	}

	loans, meta, err := h.s.Records(ctx, f, page)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to list loans", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, envelope{"loans": loans, "metadata": meta})
}

// GetOptions godoc
// @Summary      Loan filter options
// @Tags         Loans
// @Produce      json
// @Success      200  {object}  models.LoanOptions
// @Router       /loans/options [get]
func (h *Loan) GetOptions(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "loans_get_options")

	opts, err := h.s.Options(ctx)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to get loan options", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, opts)
}
