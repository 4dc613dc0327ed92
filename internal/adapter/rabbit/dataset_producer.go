package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
	"github.com/Temutjin2k/ride-hail-insights/pkg/rabbit"
	"github.com/rabbitmq/amqp091-go"
)

type DatasetProducer struct {
	client  *rabbit.RabbitMQ
	service string
}

func NewDatasetProducer(client *rabbit.RabbitMQ, service string) *DatasetProducer {
	return &DatasetProducer{
		client:  client,
		service: service,
	}
}

// PublishReloaded announces a freshly loaded dataset snapshot.
func (p *DatasetProducer) PublishReloaded(ctx context.Context, event models.DatasetReloadedEvent) error {
	const op = "DatasetProducer.PublishReloaded"

	body, err := json.Marshal(event)
	if err != nil {
		ctx = wrap.WithAction(ctx, "marshal_dataset_event")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to marshal message: %w", op, err))
	}

	key := reloadedKey(event.Dataset)

	err = retry(3, 500*time.Millisecond, func() error {
		if err := p.client.EnsureConnection(ctx); err != nil {
			return err
		}
		ch, err := p.client.Channel()
		if err != nil {
			return err
		}
		if err := ch.ExchangeDeclare(DashboardExchange, exchangeKind, true, false, false, false, nil); err != nil {
			return err
		}

		return ch.PublishWithContext(
			ctx,
			DashboardExchange, // exchange
			key,               // routing key
			false,             // mandatory
			false,             // immediate
			amqp091.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp091.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
			},
		)
	})
	metrics.RecordRabbitMQPublish(p.service, key, err)
	if err != nil {
		ctx = wrap.WithAction(ctx, "publish_message")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to publish with context: %w", op, err))
	}

	return nil
}
