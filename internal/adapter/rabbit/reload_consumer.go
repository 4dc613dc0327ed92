package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
	"github.com/Temutjin2k/ride-hail-insights/pkg/rabbit"
	amqp "github.com/rabbitmq/amqp091-go"
)

type ReloadConsumer struct {
	client  *rabbit.RabbitMQ
	service string
	l       logger.Logger
}

func NewReloadConsumer(client *rabbit.RabbitMQ, service string, l logger.Logger) *ReloadConsumer {
	return &ReloadConsumer{client: client, service: service, l: l}
}

type ReloadHandlerFunc func(ctx context.Context, req models.ReloadRequest) error

// declareAndBindQueue declares the queue and binds it to the exchange.
func (c *ReloadConsumer) declareAndBindQueue(ctx context.Context, ch *amqp.Channel, queueName, bindingKey, exchangeName string) (amqp.Queue, error) {
	const op = "ReloadConsumer.declareAndBindQueue"

	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return q, wrap.Error(ctx, fmt.Errorf("%s: declare queue failed: %w", op, err))
	}

	if err := ch.QueueBind(q.Name, bindingKey, exchangeName, false, nil); err != nil {
		return q, wrap.Error(ctx, fmt.Errorf("%s: bind queue failed: %w", op, err))
	}

	return q, nil
}

func (c *ReloadConsumer) handleMessage(ctx context.Context, fn ReloadHandlerFunc, queue string, msg amqp.Delivery) {
	const op = "ReloadConsumer.handleMessage"

	var req models.ReloadRequest
	if err := json.Unmarshal(msg.Body, &req); err != nil {
		c.l.Error(ctx, "decode failed", err, "op", op)
		metrics.RecordRabbitMQConsume(c.service, queue, err)
		_ = msg.Nack(false, false)
		return
	}

	err := fn(ctx, req)
	metrics.RecordRabbitMQConsume(c.service, queue, err)
	if err != nil {
		c.l.Error(ctx, "handler failed", err, "op", op)

		if isPermanentError(err) {
			c.l.Warn(ctx, "dropping message", "reason", err.Error())
			_ = msg.Reject(false)
			return
		}

		// one more attempt for transient source failures
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}

	if err := msg.Ack(false); err != nil {
		c.l.Warn(ctx, "ack failed", "error", err.Error(), "op", op)
	}
}

// ConsumeReloadRequests listens for dataset.reload.<dataset> and passes each
// request to fn sequentially.
func (c *ReloadConsumer) ConsumeReloadRequests(ctx context.Context, dataset string, fn ReloadHandlerFunc) error {
	const op = "ReloadConsumer.ConsumeReloadRequests"

	queueName := reloadQueue(c.service, dataset)

	for {
		if ctx.Err() != nil {
			c.l.Debug(ctx, "reload consumer stopped by context")
			return nil
		}

		if err := c.client.EnsureConnection(ctx); err != nil {
			c.l.Error(ctx, "ensure connection failed", err, "op", op)
			if !sleepCtx(ctx, 2*time.Second) {
				return nil
			}
			continue
		}

		ch, err := c.client.Channel()
		if err != nil {
			c.l.Error(ctx, "channel unavailable", err, "op", op)
			if !sleepCtx(ctx, 2*time.Second) {
				return nil
			}
			continue
		}

		if err := ch.ExchangeDeclare(DashboardExchange, exchangeKind, true, false, false, false, nil); err != nil {
			c.l.Error(ctx, "declare exchange failed", err, "op", op)
			if !sleepCtx(ctx, 3*time.Second) {
				return nil
			}
			continue
		}

		q, err := c.declareAndBindQueue(ctx, ch, queueName, reloadKey(dataset), DashboardExchange)
		if err != nil {
			c.l.Error(ctx, "declare queue failed", err, "op", op)
			if !sleepCtx(ctx, 2*time.Second) {
				return nil
			}
			continue
		}

		msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
		if err != nil {
			c.l.Error(ctx, "consume failed", err, "op", op)
			if !sleepCtx(ctx, 2*time.Second) {
				return nil
			}
			continue
		}

		c.l.Info(ctx, "start consuming reload requests", "queue", q.Name)

	consumeLoop:
		for {
			select {
			case <-ctx.Done():
				c.l.Info(ctx, "reload consumer shutting down", "op", op)
				return nil

			case msg, ok := <-msgs:
				if !ok {
					c.l.Warn(ctx, "message channel closed, reconnecting...", "op", op)
					break consumeLoop
				}

				// reloads are heavy, run them one at a time
				c.handleMessage(ctx, fn, q.Name, msg)
			}
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
