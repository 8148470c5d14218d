package bootstrap

import (
	"context"

	"go-hrms/internal/config"
	"go-hrms/internal/observability/tracing"

	"go.uber.org/zap"
)

// InitTracing installs the tracer provider for the named process.
func InitTracing(ctx context.Context, cfg *config.Config, process string, logger *zap.Logger) (tracing.ShutdownFunc, error) {
	return tracing.Init(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName + "-" + process,
		Environment: cfg.App.Env,
		SampleRate:  cfg.Tracing.SampleRate,
	}, logger.Named("tracing"))
}
