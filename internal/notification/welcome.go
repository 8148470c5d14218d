package notification

import (
	"bytes"
	"context"
	htmltemplate "html/template"
	"text/template"

	"go-hrms/internal/events"
	"go-hrms/internal/observability/metrics"
	"go-hrms/internal/shared/contextutil"

	"go.uber.org/zap"
)

const KindWelcome = "welcome"

var (
	welcomeSubject = template.Must(template.New("subject").Parse(
		`Welcome aboard, {{.Name}}!`))

	welcomeText = template.Must(template.New("text").Parse(`Hi {{.Name}},

You have been added to the team as {{if .Designation}}{{.Designation}}{{else}}a new employee{{end}}{{if .Department}} in {{.Department}}{{end}}.
Your employee code is {{.EmployeeCode}}.
{{if .HasLogin}}
You can sign in with {{.Email}}. Your initial password is shared by HR separately.
{{end}}
Happy to have you.
`))

	welcomeHTML = htmltemplate.Must(htmltemplate.New("html").Parse(
		`<p>Hi {{.Name}},</p><p>Your employee code is <b>{{.EmployeeCode}}</b>.</p><p><b>Happy to have you.</b></p>`))
)

type Notifier struct {
	mailer Mailer
	logger *zap.Logger
}

func NewNotifier(mailer Mailer, logger ...*zap.Logger) *Notifier {
	l := zap.L().Named("notification.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.notifier")
	}
	return &Notifier{mailer: mailer, logger: l}
}

// SendWelcome mails a newly created employee.
func (n *Notifier) SendWelcome(ctx context.Context, event events.EmployeeCreatedEvent) error {
	log := contextutil.GetLogger(ctx, n.logger)

	msg, err := renderWelcome(event)
	if err != nil {
		metrics.ObserveNotification(KindWelcome, "render_error")
		return err
	}

	if err := n.mailer.Send(ctx, msg); err != nil {
		metrics.ObserveNotification(KindWelcome, "failed")
		log.Warn("send welcome mail failed",
			zap.String("employee_id", event.EmployeeID),
			zap.String("to", event.Email),
			zap.Error(err),
		)
		return err
	}

	metrics.ObserveNotification(KindWelcome, "sent")
	log.Info("welcome mail sent", zap.String("employee_id", event.EmployeeID))
	return nil
}

func renderWelcome(event events.EmployeeCreatedEvent) (Message, error) {
	var subject, text, html bytes.Buffer
	if err := welcomeSubject.Execute(&subject, event); err != nil {
		return Message{}, err
	}
	if err := welcomeText.Execute(&text, event); err != nil {
		return Message{}, err
	}
	if err := welcomeHTML.Execute(&html, event); err != nil {
		return Message{}, err
	}
	return Message{
		To:      event.Email,
		Subject: subject.String(),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
