package outbox

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	contracts "zzpboard/contracts/mq"
	"zzpboard/pkg/circuitbreaker"
	"zzpboard/pkg/metrics"
	"zzpboard/pkg/mq"
)

// Dispatcher polls pending change events and publishes them to the broker.
// A circuit breaker around the publish path keeps a dead broker from burning
// through every event's retry budget in one sweep.
type Dispatcher struct {
	repo       *Repository
	publisher  *mq.Publisher
	logger     *zap.Logger
	breaker    *circuitbreaker.CircuitBreaker
	maxRetries int
	interval   time.Duration
	batchSize  int
}

func NewDispatcher(
	repo *Repository,
	publisher *mq.Publisher,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		repo:       repo,
		publisher:  publisher,
		logger:     logger,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		maxRetries: 5,
		interval:   1 * time.Second,
		batchSize:  100,
	}
}

func (d *Dispatcher) WithMaxRetries(maxRetries int) *Dispatcher {
	d.maxRetries = maxRetries
	return d
}

func (d *Dispatcher) WithInterval(interval time.Duration) *Dispatcher {
	d.interval = interval
	return d
}

func (d *Dispatcher) WithBatchSize(batchSize int) *Dispatcher {
	d.batchSize = batchSize
	return d
}

// Start runs the dispatch loop until ctx is cancelled. Call in a goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("Starting change-event dispatcher",
		zap.Int("max_retries", d.maxRetries),
		zap.Duration("interval", d.interval),
		zap.Int("batch_size", d.batchSize),
	)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Change-event dispatcher stopped")
			return
		case <-ticker.C:
			d.processPendingEvents(ctx)
		}
	}
}

func (d *Dispatcher) processPendingEvents(ctx context.Context) {
	events, err := d.repo.GetPendingEvents(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("Failed to get pending events", zap.Error(err))
		return
	}

	if len(events) == 0 {
		return
	}

	d.logger.Debug("Processing pending change events",
		zap.Int("count", len(events)),
	)

	for _, event := range events {
		body, err := envelopeBody(event)
		if err != nil {
			d.logger.Error("Failed to build event envelope",
				zap.Int64("event_id", event.ID),
				zap.Error(err),
			)
			if err := d.repo.MarkAsFailed(ctx, event.ID, d.maxRetries); err != nil {
				d.logger.Error("Failed to mark event as failed",
					zap.Int64("event_id", event.ID),
					zap.Error(err),
				)
			}
			continue
		}

		err = d.breaker.Execute(func() error {
			return d.publisher.PublishRaw(event.RoutingKey, body)
		})
		if err != nil {
			metrics.IncrementChangeEventPublished(event.RoutingKey, "failed")
			d.logger.Error("Failed to publish change event",
				zap.Int64("event_id", event.ID),
				zap.String("routing_key", event.RoutingKey),
				zap.Error(err),
			)

			if err == circuitbreaker.ErrCircuitBreakerOpen {
				// broker is down, leave the rest of the batch pending
				// without touching their retry counters
				return
			}

			if err := d.repo.MarkAsFailed(ctx, event.ID, d.maxRetries); err != nil {
				d.logger.Error("Failed to mark event as failed",
					zap.Int64("event_id", event.ID),
					zap.Error(err),
				)
			}
			continue
		}

		metrics.IncrementChangeEventPublished(event.RoutingKey, "success")

		if err := d.repo.MarkAsSent(ctx, event.ID); err != nil {
			d.logger.Error("Failed to mark event as sent",
				zap.Int64("event_id", event.ID),
				zap.Error(err),
			)
		} else {
			d.logger.Debug("Change event published",
				zap.Int64("event_id", event.ID),
				zap.String("routing_key", event.RoutingKey),
			)
		}
	}
}

func envelopeBody(event *Event) ([]byte, error) {
	return json.Marshal(contracts.Envelope{
		EventID: event.ID,
		Payload: event.Payload,
	})
}
