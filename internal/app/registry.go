package app

import (
	"time"

	"go-hrms/internal/announcement"
	"go-hrms/internal/auth"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func registerModules(api *gin.RouterGroup, d Deps) error {
	cfg := d.Config

	// --- Repositories ---
	authRepo := auth.NewRepository(d.GORM)
	employeeRepo := employee.NewRepository(d.GORM)
	counterRepo := counter.NewRepository(d.GORM)
	leaveRepo := leave.NewRepository(d.GORM)
	announcementRepo := announcement.NewRepository(d.GORM)
	outboxRepo := kafka.NewOutboxRepository(d.SQL)
	userRepo := user.NewRepository(d.GORM)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(rbac.DefaultPermissions())
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, d.Logger)

	// --- Services ---
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := auth.NewService(authRepo, tokens, employeeRepo, rbacService, d.Audit, d.Logger)
	employeeService := employee.NewServiceWithOutbox(d.SQL, employeeRepo, counterRepo, outboxRepo, authService, d.Redis, d.Logger)
	leaveService := leave.NewService(d.SQL, leaveRepo, employeeRepo, d.Audit, d.Logger)
	announcementService := announcement.NewService(d.SQL, announcementRepo, d.Redis, d.Logger)
	userService := user.NewService(userRepo, d.Audit, d.Logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:     cfg.App.IsProduction(),
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	}, d.Logger)
	employeeHandler := employee.NewHandler(employeeService, d.Logger)
	leaveHandler := leave.NewHandler(leaveService, d.Logger)
	announcementHandler := announcement.NewHandler(announcementService, d.Logger)
	userHandler := user.NewHandler(userService, d.Logger)

	// --- Routes Registration ---
	loginLimit := rate.Every(time.Minute / time.Duration(max(cfg.RateLimit.LoginPerMinute, 1)))
	auth.RegisterRoutes(api, authHandler, authService, rbacService, loginLimit, max(cfg.RateLimit.LoginPerMinute, 1))
	employee.RegisterRoutes(api, employeeHandler, authService, rbacService)
	leave.RegisterRoutes(api, leaveHandler, authService, rbacService, d.Redis)
	announcement.RegisterRoutes(api, announcementHandler, authService, rbacService)
	user.RegisterRoutes(api, userHandler, authService, rbacService)

	return nil
}
