package producer

import (
	"context"
	"time"

	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/observability/metrics"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 50
)

// Worker relays pending outbox rows to Kafka. Delivery is at least once:
// a crash between publish and MarkSent republishes the event.
type Worker struct {
	repo         kafka.OutboxRepository
	writer       MessageWriter
	pollInterval time.Duration
	batchSize    int
	logger       *zap.Logger
}

func NewWorker(repo kafka.OutboxRepository, writer MessageWriter, pollInterval time.Duration, logger ...*zap.Logger) *Worker {
	l := zap.L().Named("kafka.producer.worker")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.worker")
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Worker{
		repo:         repo,
		writer:       writer,
		pollInterval: pollInterval,
		batchSize:    defaultBatchSize,
		logger:       l,
	}
}

// Run polls until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.pollInterval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := w.ProcessBatch(ctx); err != nil {
				w.logger.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessBatch publishes one batch of due events and returns how many were
// sent.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	events, err := w.repo.ListPending(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	w.logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		log := w.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.String("request_id", event.RequestID),
		)

		if err := publishEvent(ctx, w.writer, event); err != nil {
			log.Error("publish outbox event failed", zap.Int("retry_count", event.RetryCount), zap.Error(err))
			metrics.ObserveOutbox(event.EventType, "failed")
			if markErr := w.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("mark outbox failed failed", zap.Error(markErr))
			}
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox sent failed", zap.Error(err))
			continue
		}

		metrics.ObserveOutbox(event.EventType, "sent")
		log.Info("outbox event sent")
		sent++
	}

	return sent, nil
}
