package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const fetchRetryDelay = time.Second

// MessageReader is the part of *kafkago.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type WelcomeNotifier interface {
	SendWelcome(ctx context.Context, event events.EmployeeCreatedEvent) error
}

func NewReader(brokers []string, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          events.EmployeeLifecycleTopic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
		MaxWait:        time.Second,
	})
}

// ConsumeEmployeeLifecycle sends the welcome mail for every employee_created
// event. Notification is best effort: every message is committed, including
// ones whose mail could not be sent.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	notifier WelcomeNotifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(fetchRetryDelay):
			}
			continue
		}

		handleMessage(ctx, msg, notifier, log)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

func handleMessage(ctx context.Context, msg kafkago.Message, notifier WelcomeNotifier, log *zap.Logger) {
	eventType := header(msg, "event_type")
	if rid := header(msg, "request_id"); rid != "" {
		ctx = contextutil.WithRequestID(ctx, rid)
		log = log.With(zap.String("request_id", rid))
	}

	if eventType != "" && eventType != events.EmployeeCreatedType {
		log.Debug("skipping employee lifecycle event", zap.String("event_type", eventType))
		return
	}

	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee_created event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		return
	}
	if event.Email == "" {
		log.Warn("employee_created event without email, skipping", zap.String("employee_id", event.EmployeeID))
		return
	}

	ctx = contextutil.WithLogger(ctx, log)
	if err := notifier.SendWelcome(ctx, event); err != nil {
		log.Warn("welcome mail dropped",
			zap.String("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return
	}
	log.Info("welcome mail handled from employee_created event", zap.String("employee_id", event.EmployeeID))
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
