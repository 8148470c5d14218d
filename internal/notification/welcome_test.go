package notification

import (
	"context"
	"errors"
	"testing"

	"go-hrms/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingMailer struct {
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func sampleEvent() events.EmployeeCreatedEvent {
	return events.EmployeeCreatedEvent{
		EventType:    events.EmployeeCreatedType,
		EmployeeID:   "emp-1",
		EmployeeCode: "EMP-000042",
		Name:         "Ann <Lee>",
		Email:        "ann@example.com",
		Designation:  "Engineer",
		Department:   "IT",
		HasLogin:     true,
	}
}

func TestNotifier_SendWelcome(t *testing.T) {
	mailer := &recordingMailer{}
	n := NewNotifier(mailer, zap.NewNop())

	require.NoError(t, n.SendWelcome(context.Background(), sampleEvent()))

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "ann@example.com", msg.To)
	assert.Equal(t, "Welcome aboard, Ann <Lee>!", msg.Subject)
	assert.Contains(t, msg.Text, "EMP-000042")
	assert.Contains(t, msg.Text, "as Engineer in IT")
	assert.Contains(t, msg.Text, "sign in with ann@example.com")
	assert.Contains(t, msg.HTML, "Ann &lt;Lee&gt;")
}

func TestNotifier_SendWelcomeWithoutLogin(t *testing.T) {
	mailer := &recordingMailer{}
	event := sampleEvent()
	event.HasLogin = false
	event.Designation = ""

	require.NoError(t, NewNotifier(mailer, zap.NewNop()).SendWelcome(context.Background(), event))

	assert.NotContains(t, mailer.sent[0].Text, "sign in")
	assert.Contains(t, mailer.sent[0].Text, "a new employee")
}

func TestNotifier_MailerError(t *testing.T) {
	n := NewNotifier(&recordingMailer{err: errors.New("smtp down")}, zap.NewNop())

	err := n.SendWelcome(context.Background(), sampleEvent())

	assert.EqualError(t, err, "smtp down")
}

func TestBuildMsg(t *testing.T) {
	msg, err := buildMsg("hr@example.com", Message{To: "ann@example.com", Subject: "Hi", Text: "body", HTML: "<b>x</b>"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi"}, msg.GetGenHeader("Subject"))

	_, err = buildMsg("hr@example.com", Message{To: "not an address"})
	assert.Error(t, err)
}
