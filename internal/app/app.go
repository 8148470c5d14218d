package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go-hrms/internal/bootstrap"
	"go-hrms/internal/config"
	"go-hrms/internal/middleware"
	"go-hrms/internal/observability/metrics"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/audit"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the shared handles every module is built from.
type Deps struct {
	Config *config.Config
	SQL    *sql.DB
	GORM   *gorm.DB
	Redis  *redis.Client
	Audit  audit.Logger
	Logger *zap.Logger
}

// RunAPI connects the stores, builds the router and serves until ctx is done.
func RunAPI(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.api")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB.DSN(), cfg.DB.MaxRetries, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	logger.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.DB.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()
	logger.Info("redis connection established")

	deps := Deps{
		Config: cfg,
		SQL:    sqlDB,
		GORM:   gormDB,
		Redis:  rdb,
		Audit:  audit.NewZapLogger(logger),
		Logger: logger,
	}

	router, err := NewRouter(deps)
	if err != nil {
		return err
	}

	server := bootstrap.NewHTTPServer(router, bootstrap.ServerConfig{
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	})
	return bootstrap.Serve(ctx, server, deps.Audit)
}

func NewRouter(d Deps) (*gin.Engine, error) {
	if d.Config.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(d.Logger),
		middleware.AccessLog(d.Logger.Named("http")),
		metrics.GinMiddleware(),
	)

	r.GET("/healthz", healthz(d))
	r.GET("/metrics", metrics.Handler())

	if err := registerModules(r.Group("/api/v1"), d); err != nil {
		return nil, err
	}
	return r, nil
}

func healthz(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "redis": "ok"}
		healthy := true
		if err := d.SQL.PingContext(ctx); err != nil {
			d.Logger.Warn("database ping failed", zap.Error(err))
			checks["database"] = "unavailable"
			healthy = false
		}
		if err := d.Redis.Ping(ctx).Err(); err != nil {
			d.Logger.Warn("redis ping failed", zap.Error(err))
			checks["redis"] = "unavailable"
			healthy = false
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Service unavailable", checks)
			return
		}
		response.Success(c, http.StatusOK, checks, nil)
	}
}
