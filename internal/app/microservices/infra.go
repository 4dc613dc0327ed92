package microservices

import (
	"context"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/config"
	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/excel"
	rabbitadapter "github.com/Temutjin2k/ride-hail-insights/internal/adapter/rabbit"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/service/dataset"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	minioclient "github.com/Temutjin2k/ride-hail-insights/pkg/minio"
	postgresclient "github.com/Temutjin2k/ride-hail-insights/pkg/postgres"
	rabbitclient "github.com/Temutjin2k/ride-hail-insights/pkg/rabbit"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// reloader is a dataset store as seen by schedulers and consumers.
type reloader interface {
	Name() string
	Reload(ctx context.Context) (models.DatasetInfo, error)
}

// infra holds the connections shared by a dashboard: the dataset source
// and the optional message broker.
type infra struct {
	postgresDB *postgresclient.PostgreDB
	minio      *minioclient.Client
	rabbit     *rabbitclient.RabbitMQ

	cfg config.Config
	log logger.Logger
}

func newInfra(ctx context.Context, cfg config.Config, log logger.Logger) (*infra, error) {
	i := &infra{cfg: cfg, log: log}

	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		db, err := postgresclient.New(ctx, cfg.Database)
		if err != nil {
			log.Error(ctx, "Failed to setup database", err)
			return nil, err
		}
		i.postgresDB = db
	case config.SourceMinio:
		mc, err := minioclient.New(ctx, cfg.Minio)
		if err != nil {
			log.Error(ctx, "Failed to setup object storage", err)
			return nil, err
		}
		i.minio = mc
	}

	if cfg.RabbitMQ.Enabled {
		rc, err := rabbitclient.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			log.Error(ctx, "Failed to setup rabbitmq", err)
			i.close(ctx)
			return nil, err
		}
		i.rabbit = rc
	}

	return i, nil
}

// datasetLoader picks the loader of the configured source.
func datasetLoader[T any](i *infra, path, sheet, object string, parse excel.Parser[T], fromDB func(db *pgxpool.Pool) dataset.Loader[T]) (dataset.Loader[T], error) {
	switch i.cfg.Dataset.Source {
	case config.SourceFile:
		return excel.NewFileLoader(path, sheet, parse), nil
	case config.SourceMinio:
		return excel.NewObjectLoader(i.minio, object, sheet, parse), nil
	case config.SourcePostgres:
		return fromDB(i.postgresDB.Pool), nil
	default:
		return nil, fmt.Errorf("unknown dataset source: %q", i.cfg.Dataset.Source)
	}
}

// publishers returns the dataset.reloaded fan-out: extra (in-process
// listeners) plus the broker when enabled.
func (i *infra) publishers(extra ...dataset.Publisher) dataset.Publishers {
	ps := dataset.Publishers(extra)
	if i.rabbit != nil {
		ps = append(ps, rabbitadapter.NewDatasetProducer(i.rabbit, i.cfg.Mode.String()))
	}
	return ps
}

// initialLoad loads the first snapshot. A failure is logged and the
// dashboard starts anyway, answering 503 until a reload succeeds.
func (i *infra) initialLoad(ctx context.Context, r reloader) {
	info, err := r.Reload(ctx)
	if err != nil {
		i.log.Warn(ctx, "initial dataset load failed, serving without data", "dataset", r.Name(), "error", err.Error())
		return
	}
	i.log.Info(ctx, "initial dataset loaded", "dataset", info.Name, "rows", info.Rows)
}

// reloadScheduler returns nil when no schedule is configured.
func (i *infra) reloadScheduler(r reloader) (*cron.Cron, error) {
	spec := i.cfg.Dataset.ReloadCron
	if spec == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx := wrap.WithDataset(wrap.WithAction(context.Background(), "scheduled_reload"), r.Name())
		ctx, cancel := context.WithTimeout(ctx, i.cfg.Dataset.ReloadTimeout)
		defer cancel()

		// Store.Reload logs the failure and keeps the previous snapshot
		if info, err := r.Reload(ctx); err == nil {
			i.log.Debug(ctx, "scheduled reload finished", "rows", info.Rows)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	return c, nil
}

// consumeReloads serves dataset.reload.<name> requests until ctx is done.
// It is a no-op without a broker.
func (i *infra) consumeReloads(ctx context.Context, r reloader) {
	if i.rabbit == nil {
		return
	}

	consumer := rabbitadapter.NewReloadConsumer(i.rabbit, i.cfg.Mode.String(), i.log)
	go func() {
		err := consumer.ConsumeReloadRequests(ctx, r.Name(), func(ctx context.Context, req models.ReloadRequest) error {
			ctx = wrap.WithDataset(wrap.WithAction(ctx, "broker_reload"), r.Name())
			if req.CorrelationID != "" {
				ctx = wrap.WithRequestID(ctx, req.CorrelationID)
			}
			ctx, cancel := context.WithTimeout(ctx, i.cfg.Dataset.ReloadTimeout)
			defer cancel()

			i.log.Info(ctx, "reload requested", "requested_by", req.RequestedBy)
			_, err := r.Reload(ctx)
			return err
		})
		if err != nil {
			i.log.Error(ctx, "reload consumer stopped", err)
		}
	}()
}

func (i *infra) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if i.rabbit != nil {
		if err := i.rabbit.Close(ctx); err != nil {
			i.log.Warn(ctx, "Failed to close rabbitmq connection", "error", err.Error())
		}
	}

	if i.postgresDB != nil && i.postgresDB.Pool != nil {
		i.postgresDB.Pool.Close()
	}
}
