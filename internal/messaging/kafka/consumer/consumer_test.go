package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-hrms/internal/events"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptedReader struct {
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type recordingNotifier struct {
	sent       []events.EmployeeCreatedEvent
	requestIDs []string
	err        error
}

func (n *recordingNotifier) SendWelcome(ctx context.Context, event events.EmployeeCreatedEvent) error {
	n.requestIDs = append(n.requestIDs, contextutil.GetRequestID(ctx))
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, event)
	return nil
}

func createdMessage(t *testing.T, offset int64, email string) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(events.EmployeeCreatedEvent{
		EventType:  events.EmployeeCreatedType,
		EmployeeID: "emp",
		Email:      email,
	})
	require.NoError(t, err)
	return kafkago.Message{
		Offset: offset,
		Value:  payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(events.EmployeeCreatedType)},
			{Key: "request_id", Value: []byte("rid-1")},
		},
	}
}

func run(t *testing.T, notifier *recordingNotifier, msgs ...kafkago.Message) *scriptedReader {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	reader := &scriptedReader{msgs: msgs, cancel: cancel}
	ConsumeEmployeeLifecycle(ctx, reader, notifier, zap.NewNop())
	return reader
}

func TestConsumeEmployeeLifecycle_SendsWelcome(t *testing.T) {
	notifier := &recordingNotifier{}

	reader := run(t, notifier, createdMessage(t, 1, "ann@example.com"))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "ann@example.com", notifier.sent[0].Email)
	assert.Equal(t, []string{"rid-1"}, notifier.requestIDs)
	assert.Equal(t, []int64{1}, reader.committed)
}

func TestConsumeEmployeeLifecycle_CommitsOnFailure(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	garbage := kafkago.Message{Offset: 2, Value: []byte("{not json")}
	other := kafkago.Message{Offset: 3, Headers: []kafkago.Header{{Key: "event_type", Value: []byte("employee_deleted")}}}

	reader := run(t, notifier, createdMessage(t, 1, "ann@example.com"), garbage, other, createdMessage(t, 4, ""))

	assert.Empty(t, notifier.sent)
	assert.Len(t, notifier.requestIDs, 1)
	assert.Equal(t, []int64{1, 2, 3, 4}, reader.committed)
}
