package connection

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// RetryDelay is the pause between dial attempts.
var RetryDelay = 5 * time.Second

func ConnectGORMWithRetry(dsn string, maxRetries int, logger ...*zap.Logger) (*gorm.DB, error) {
	log := pickLogger(logger).With(zap.String("component", "postgres"))

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			lastErr = err
			log.Warn("gorm open failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
			time.Sleep(RetryDelay)
			continue
		}

		sqlDB, err := db.DB()
		if err != nil {
			lastErr = err
			log.Warn("get sql.DB failed", zap.Int("attempt", i), zap.Error(err))
			time.Sleep(RetryDelay)
			continue
		}

		if err := sqlDB.Ping(); err != nil {
			lastErr = err
			log.Warn("db ping failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
			time.Sleep(RetryDelay)
			continue
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)

		log.Info("connected to database")
		return db, nil
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

func ConnectRedisWithRetry(opts *redis.Options, maxRetries int, logger ...*zap.Logger) (*redis.Client, error) {
	log := pickLogger(logger).With(zap.String("component", "redis"))
	rdb := redis.NewClient(opts)

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		lastErr = rdb.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			log.Info("connected to redis", zap.String("addr", opts.Addr))
			return rdb, nil
		}

		log.Warn("redis ping failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(lastErr))
		time.Sleep(RetryDelay)
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("redis connection failed after %d retries: %w", maxRetries, lastErr)
}

// ConnectKafkaWithRetry dials the first reachable broker to fail fast at
// start-up, then hands back a writer that routes by message topic.
func ConnectKafkaWithRetry(brokers []string, maxRetries int, logger ...*zap.Logger) (*kafkago.Writer, error) {
	log := pickLogger(logger).With(zap.String("component", "kafka"))
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		for _, broker := range brokers {
			conn, err := kafkago.Dial("tcp", broker)
			if err != nil {
				lastErr = err
				continue
			}
			_ = conn.Close()

			log.Info("connected to kafka", zap.Strings("brokers", brokers))
			return &kafkago.Writer{
				Addr:                   kafkago.TCP(brokers...),
				Balancer:               &kafkago.Hash{},
				RequiredAcks:           kafkago.RequireAll,
				AllowAutoTopicCreation: true,
				WriteTimeout:           10 * time.Second,
				Transport: &kafkago.Transport{
					Dial: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
				},
			}, nil
		}

		log.Warn("kafka dial failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(lastErr))
		time.Sleep(RetryDelay)
	}

	return nil, fmt.Errorf("kafka connection failed after %d retries: %w", maxRetries, lastErr)
}

func pickLogger(logger []*zap.Logger) *zap.Logger {
	if len(logger) > 0 && logger[0] != nil {
		return logger[0]
	}
	return zap.L().Named("connection")
}
