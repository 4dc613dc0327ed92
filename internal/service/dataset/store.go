package dataset

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/hasher"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
)

// Store holds the current snapshot of one dataset. Readers get an
// immutable snapshot; reloads swap it atomically and never partially.
type Store[T any] struct {
	name      string
	loader    Loader[T]
	publisher Publisher
	current   atomic.Pointer[models.Dataset[T]]
	reloadMu  sync.Mutex

	service string
	now     func() time.Time
	l       logger.Logger
}

func NewStore[T any](name string, loader Loader[T], service string, l logger.Logger) *Store[T] {
	return &Store[T]{
		name:    name,
		loader:  loader,
		service: service,
		now:     time.Now,
		l:       l,
	}
}

// SetPublisher enables dataset.reloaded events after each successful load.
func (s *Store[T]) SetPublisher(p Publisher) {
	s.publisher = p
}

func (s *Store[T]) Name() string {
	return s.name
}

// Current returns the active snapshot. Callers must not modify its rows.
func (s *Store[T]) Current() (*models.Dataset[T], error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, types.ErrDatasetNotLoaded
	}
	return ds, nil
}

// Reload reads the source and swaps the snapshot. On failure the previous
// snapshot stays active.
func (s *Store[T]) Reload(ctx context.Context) (models.DatasetInfo, error) {
	ctx = wrap.WithDataset(wrap.WithAction(ctx, "reload_dataset"), s.name)

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ds, err := s.load(ctx)
	metrics.RecordDatasetLoad(s.service, s.name, len(ds.Rows), err)
	if err != nil {
		s.l.Error(wrap.WithAction(ctx, types.ActionDatasetReloadFailed), "failed to load dataset", err, "source", s.loader.Source())
		return models.DatasetInfo{}, wrap.Error(ctx, err)
	}

	s.current.Store(ds)
	info := ds.Info()
	s.l.Info(wrap.WithAction(ctx, types.ActionDatasetLoaded), "dataset loaded",
		"source", info.Source,
		"rows", info.Rows,
		"fingerprint", info.Fingerprint,
	)

	if s.publisher != nil {
		event := models.DatasetReloadedEvent{
			Dataset:     info.Name,
			Source:      info.Source,
			Rows:        info.Rows,
			Fingerprint: info.Fingerprint,
			LoadedAt:    info.LoadedAt,
		}
		if err := s.publisher.PublishReloaded(ctx, event); err != nil {
			s.l.Error(wrap.ErrorCtx(ctx, err), "failed to publish dataset reloaded event", err)
		}
	}
	return info, nil
}

func (s *Store[T]) load(ctx context.Context) (*models.Dataset[T], error) {
	rows, err := s.loader.Load(ctx)
	if err != nil {
		return &models.Dataset[T]{}, fmt.Errorf("load %s from %s: %w", s.name, s.loader.Source(), err)
	}
	if len(rows) == 0 {
		return &models.Dataset[T]{}, fmt.Errorf("load %s from %s: %w", s.name, s.loader.Source(), types.ErrEmptyDataset)
	}

	fp, err := hasher.SumJSON(rows)
	if err != nil {
		return &models.Dataset[T]{}, err
	}

	return &models.Dataset[T]{
		Name:        s.name,
		Source:      s.loader.Source(),
		Rows:        rows,
		LoadedAt:    s.now(),
		Fingerprint: fp[:16],
	}, nil
}
