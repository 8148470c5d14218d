package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-hrms/internal/messaging/kafka"
	kafkaMock "go-hrms/internal/messaging/kafka/mock"
	"go-hrms/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failFor map[string]error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err, ok := f.failFor[string(m.Key)]; ok {
			return err
		}
		f.written = append(f.written, m)
	}
	return nil
}

func headerValue(m kafkago.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestWorker_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}
		w := producer.NewWorker(repo, writer, 0, zap.NewNop())

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{{
			ID:            "evt-1",
			RequestID:     "rid-1",
			AggregateType: "employee",
			AggregateID:   "emp-1",
			EventType:     "employee_created",
			Topic:         "hr.employee.lifecycle.v1",
			Payload:       []byte(`{"employee_id":"emp-1"}`),
		}}, nil)
		repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)

		sent, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		require.Len(t, writer.written, 1)
		msg := writer.written[0]
		assert.Equal(t, "hr.employee.lifecycle.v1", msg.Topic)
		assert.Equal(t, "emp-1", string(msg.Key))
		assert.Equal(t, "employee_created", headerValue(msg, producer.HeaderEventType))
		assert.Equal(t, "rid-1", headerValue(msg, producer.HeaderRequestID))
	})

	t.Run("failed publish is recorded and the batch continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]error{"bad": errors.New("broker unavailable")}}
		w := producer.NewWorker(repo, writer, 0, zap.NewNop())

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "evt-bad", AggregateID: "bad", EventType: "employee_created", Topic: "t"},
			{ID: "evt-ok", AggregateID: "ok", EventType: "employee_created", Topic: "t"},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "evt-bad", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "evt-ok").Return(nil)

		sent, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		require.Len(t, writer.written, 1)
		assert.Empty(t, headerValue(writer.written[0], producer.HeaderRequestID))
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		w := producer.NewWorker(repo, &fakeWriter{}, 0, zap.NewNop())

		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := w.ProcessBatch(ctx)

		assert.EqualError(t, err, "db down")
	})
}
