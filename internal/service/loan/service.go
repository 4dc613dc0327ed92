package loan

import (
	"context"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
)

type LoanDataset interface {
	Current() (*models.Dataset[models.Loan], error)
}

// LoanSortSafelist are the sortable columns of the loan record table.
var LoanSortSafelist = []string{"date_of_issue", "-date_of_issue", "outstanding", "-outstanding", "date_due", "-date_due"}

type Service struct {
	loans   LoanDataset
	now     func() time.Time
	service string
	l       logger.Logger
}

func NewService(loans LoanDataset, service string, l logger.Logger) *Service {
	return &Service{
		loans:   loans,
		now:     time.Now,
		service: service,
		l:       l,
	}
}

func (s *Service) filter(ctx context.Context, op string, f models.LoanFilter) ([]models.Loan, error) {
	ds, err := s.loans.Current()
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	metrics.RecomputationsTotal.WithLabelValues(s.service, op).Inc()
	return Apply(ds.Rows, f), nil
}

func (s *Service) KPIs(ctx context.Context, f models.LoanFilter) (models.LoanKPI, error) {
	loans, err := s.filter(ctx, "loan_kpis", f)
	if err != nil {
		return models.LoanKPI{}, err
	}
	return Aggregate(loans, s.now()), nil
}

func (s *Service) Daily(ctx context.Context, f models.LoanFilter) ([]models.DailyIssued, error) {
	loans, err := s.filter(ctx, "loan_daily", f)
	if err != nil {
		return nil, err
	}
	return DailyIssued(loans), nil
}

func (s *Service) Records(ctx context.Context, f models.LoanFilter, page models.Pagination) ([]models.Loan, models.Metadata, error) {
	loans, err := s.filter(ctx, "loan_records", f)
	if err != nil {
		return nil, models.Metadata{}, err
	}
	sortLoans(loans, page.SortColumn(), page.Descending())

	start, end := page.Window(len(loans))
	return loans[start:end], models.CalculateMetadata(len(loans), page.Page, page.PageSize), nil
}

func (s *Service) Options(ctx context.Context) (models.LoanOptions, error) {
	ds, err := s.loans.Current()
	if err != nil {
		return models.LoanOptions{}, wrap.Error(ctx, err)
	}
	return Options(ds.Rows), nil
}

func (s *Service) Dataset(ctx context.Context) (models.DatasetInfo, error) {
	ds, err := s.loans.Current()
	if err != nil {
		return models.DatasetInfo{}, wrap.Error(ctx, err)
	}
	return ds.Info(), nil
}
