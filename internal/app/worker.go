package app

import (
	"context"

	"go-hrms/internal/config"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/messaging/kafka/producer"
	"go-hrms/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to kafka until ctx is done.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB.DSN(), cfg.DB.MaxRetries, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Brokers, cfg.DB.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer writer.Close()

	worker := producer.NewWorker(kafka.NewOutboxRepository(sqlDB), writer, cfg.Kafka.PollInterval, logger)
	worker.Run(ctx)

	logger.Info("worker shutting down")
	return nil
}
