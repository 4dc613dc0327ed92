package insights

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/hasher"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

// Breakdown sort orders.
const (
	SortTableOrder      = ""
	SortFulfillmentDesc = "fulfillment_desc"
	SortFulfillmentAsc  = "fulfillment_asc"
)

// TripSortSafelist are the sortable columns of the raw trip table.
var TripSortSafelist = []string{"date", "-date", "distance", "-distance", "hour", "-hour"}

// Service runs one filter → aggregate → summarize pass per call on the
// current dataset snapshot.
type Service struct {
	trips     TripDataset
	sessions  SessionStore
	cache     SummaryCache
	assistant *Assistant
	service   string
	l         logger.Logger
}

func NewService(trips TripDataset, sessions SessionStore, cache SummaryCache, assistant *Assistant, service string, l logger.Logger) *Service {
	return &Service{
		trips:     trips,
		sessions:  sessions,
		cache:     cache,
		assistant: assistant,
		service:   service,
		l:         l,
	}
}

// pass is one recomputation over a single snapshot.
type pass struct {
	dataset  *models.Dataset[models.Trip]
	filtered []models.Trip
	distance models.DistanceRange
}

func (s *Service) filter(ctx context.Context, op string, f models.TripFilter) (*pass, error) {
	ds, err := s.trips.Current()
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	metrics.RecomputationsTotal.WithLabelValues(s.service, op).Inc()

	distance := DistanceBounds(ds.Rows)
	if f.Distance != nil {
		distance = *f.Distance
	}
	return &pass{
		dataset:  ds,
		filtered: Apply(ds.Rows, f),
		distance: distance,
	}, nil
}

func (s *Service) Options(ctx context.Context) (models.FilterOptions, error) {
	ds, err := s.trips.Current()
	if err != nil {
		return models.FilterOptions{}, wrap.Error(ctx, err)
	}
	return Options(ds.Rows), nil
}

func (s *Service) Dataset(ctx context.Context) (models.DatasetInfo, error) {
	ds, err := s.trips.Current()
	if err != nil {
		return models.DatasetInfo{}, wrap.Error(ctx, err)
	}
	return ds.Info(), nil
}

func (s *Service) Overview(ctx context.Context, f models.TripFilter) (models.KPI, error) {
	p, err := s.filter(ctx, "overview", f)
	if err != nil {
		return models.KPI{}, err
	}
	return Aggregate(p.filtered), nil
}

// Breakdown returns the grouped table of a dimension, optionally sorted by
// fulfillment rate and cut to limit rows (limit <= 0 keeps all).
func (s *Service) Breakdown(ctx context.Context, f models.TripFilter, dim types.Dimension, sortBy string, limit int) (models.GroupedTable, error) {
	p, err := s.filter(ctx, "breakdown", f)
	if err != nil {
		return models.GroupedTable{}, err
	}

	table, err := AggregateBy(p.filtered, dim)
	if err != nil {
		return models.GroupedTable{}, wrap.Error(ctx, err)
	}

	n := limit
	if n <= 0 {
		n = -1
	}
	switch sortBy {
	case SortFulfillmentDesc:
		table.Rows = TopByFulfillment(table.Rows, n)
	case SortFulfillmentAsc:
		table.Rows = BottomByFulfillment(table.Rows, n)
	case SortTableOrder:
		if n > 0 && n < len(table.Rows) {
			table.Rows = table.Rows[:n]
		}
	default:
		return models.GroupedTable{}, wrap.Error(ctx, fmt.Errorf("%w: unknown sort %q", types.ErrInvalidFilter, sortBy))
	}
	return table, nil
}

// Trips pages through the filtered rows for the raw table.
func (s *Service) Trips(ctx context.Context, f models.TripFilter, page models.Pagination) ([]models.Trip, models.Metadata, error) {
	p, err := s.filter(ctx, "trips", f)
	if err != nil {
		return nil, models.Metadata{}, err
	}

	rows := slices.Clone(p.filtered)
	column, desc := page.SortColumn(), page.Descending()
	slices.SortStableFunc(rows, func(a, b models.Trip) int {
		var c int
		switch column {
		case "distance":
			c = cmp.Compare(a.Distance, b.Distance)
		case "hour":
			c = cmp.Compare(a.Hour, b.Hour)
		default:
			c = a.Date.Compare(b.Date)
		}
		if desc {
			return -c
		}
		return c
	})

	start, end := page.Window(len(rows))
	return rows[start:end], models.CalculateMetadata(len(rows), page.Page, page.PageSize), nil
}

func (s *Service) Locations(ctx context.Context, f models.TripFilter) (*geojson.FeatureCollection, error) {
	p, err := s.filter(ctx, "locations", f)
	if err != nil {
		return nil, err
	}
	return Locations(p.filtered), nil
}

func (s *Service) Hourly(ctx context.Context, f models.TripFilter) ([]models.HourlyCounts, error) {
	p, err := s.filter(ctx, "hourly", f)
	if err != nil {
		return nil, err
	}
	return HourlyPivot(p.filtered), nil
}

// Summary builds the answering context, served from the cache when the
// same filter was summarized on the same dataset snapshot.
func (s *Service) Summary(ctx context.Context, f models.TripFilter) (models.Summary, error) {
	ctx = wrap.WithAction(ctx, "summary")

	ds, err := s.trips.Current()
	if err != nil {
		return models.Summary{}, wrap.Error(ctx, err)
	}

	key, err := summaryKey(ds.Fingerprint, f)
	if err != nil {
		return models.Summary{}, wrap.Error(ctx, err)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		metrics.RecordCacheLookup(s.service, cached != nil, err)
		if err != nil {
			s.l.Warn(wrap.WithAction(ctx, types.ActionCacheFailed), "summary cache lookup failed", "error", err.Error())
		}
		if cached != nil {
			return *cached, nil
		}
	}

	p, err := s.filter(ctx, "summary", f)
	if err != nil {
		return models.Summary{}, err
	}
	summary := Summarize(p.filtered, Aggregate(p.filtered), p.distance)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, &summary); err != nil {
			s.l.Warn(wrap.WithAction(ctx, types.ActionCacheFailed), "summary cache store failed", "error", err.Error())
		}
	}
	return summary, nil
}

func summaryKey(fingerprint string, f models.TripFilter) (string, error) {
	h, err := hasher.SumJSON(f)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("summary:%s:%s", fingerprint, h), nil
}

func (s *Service) CreateSession(ctx context.Context) (*models.Session, error) {
	sess, err := s.sessions.Create(ctx)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	s.l.Info(wrap.WithSessionID(ctx, sess.ID.String()), "chat session created")
	return sess, nil
}

func (s *Service) History(ctx context.Context, id uuid.UUID) ([]models.Turn, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	return sess.Conversation.Turns(), nil
}

func (s *Service) EndSession(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return wrap.Error(ctx, err)
	}
	return nil
}

// Ask answers a question against the filtered data and records both turns
// in the session's conversation.
func (s *Service) Ask(ctx context.Context, id uuid.UUID, f models.TripFilter, question string) (models.Answer, error) {
	ctx = wrap.WithSessionID(wrap.WithAction(ctx, "ask"), id.String())

	var answer models.Answer
	err := s.sessions.Update(ctx, id, func(sess *models.Session) error {
		p, err := s.filter(ctx, "ask", f)
		if err != nil {
			return err
		}

		conv, ans, err := s.assistant.Ask(ctx, sess.Conversation, question, AskInput{
			Trips:    p.filtered,
			Overall:  Aggregate(p.filtered),
			Distance: p.distance,
		})
		if err != nil {
			return err
		}

		sess.Conversation = conv
		answer = ans
		return nil
	})
	if err != nil {
		return models.Answer{}, wrap.Error(ctx, err)
	}

	s.l.Info(ctx, "question answered", "source", answer.Source, "fallback_reason", answer.FallbackReason)
	return answer, nil
}
