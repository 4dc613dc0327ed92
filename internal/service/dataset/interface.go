package dataset

import (
	"context"
	"errors"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
)

// Loader reads every row of a dataset from its source.
type Loader[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Source() string
}

type Publisher interface {
	PublishReloaded(ctx context.Context, event models.DatasetReloadedEvent) error
}

// Publishers fans an event out to every publisher.
type Publishers []Publisher

func (ps Publishers) PublishReloaded(ctx context.Context, event models.DatasetReloadedEvent) error {
	var errs []error
	for _, p := range ps {
		if err := p.PublishReloaded(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
