package app

import (
	"context"

	"go-hrms/internal/config"
	"go-hrms/internal/messaging/kafka/consumer"
	"go-hrms/internal/notification"

	"go.uber.org/zap"
)

// RunConsumer sends welcome mail for employee lifecycle events until ctx
// is done.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.consumer")

	mailer, err := newMailer(cfg.Mail, logger)
	if err != nil {
		return err
	}

	reader := consumer.NewReader(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	defer reader.Close()

	consumer.ConsumeEmployeeLifecycle(ctx, reader, notification.NewNotifier(mailer, logger), logger)

	logger.Info("consumer shutting down")
	return nil
}

func newMailer(cfg config.MailConfig, logger *zap.Logger) (notification.Mailer, error) {
	if !cfg.Enabled() {
		logger.Warn("mail host not configured, welcome mail is only logged")
		return notification.NewLogMailer(logger), nil
	}
	return notification.NewSMTPMailer(cfg)
}
