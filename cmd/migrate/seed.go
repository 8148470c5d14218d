package main

import (
	"errors"
	"fmt"

	"go-hrms/internal/auth"
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/bootstrap"
	"go-hrms/internal/config"
	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/shared/audit"
	"go-hrms/internal/shared/connection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedAdmin struct {
	name     string
	email    string
	password string
}

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "create the first Admin identity",
	RunE:  runSeedAdmin,
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedAdmin.name, "name", "Administrator", "display name")
	seedAdminCmd.Flags().StringVar(&seedAdmin.email, "email", "", "login email")
	seedAdminCmd.Flags().StringVar(&seedAdmin.password, "password", "", "login password")
	_ = seedAdminCmd.MarkFlagRequired("email")
	_ = seedAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(seedAdminCmd)
}

func runSeedAdmin(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := bootstrap.NewLogger(cfg.App.IsProduction())
	if err != nil {
		return err
	}
	defer logger.Sync()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB.DSN(), cfg.DB.MaxRetries, logger)
	if err != nil {
		return err
	}

	enforcer, err := infra.NewEnforcer(rbac.DefaultPermissions())
	if err != nil {
		return err
	}

	svc := auth.NewService(
		auth.NewRepository(gormDB),
		auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL),
		employee.NewRepository(gormDB),
		rbac.NewService(enforcer, logger),
		audit.NewZapLogger(logger),
		logger,
	)

	res, err := svc.Register(cmd.Context(), auth.RegisterRequest{
		Name:     seedAdmin.name,
		Email:    seedAdmin.email,
		Password: seedAdmin.password,
		Role:     domain.RoleAdmin.String(),
	})
	if errors.Is(err, autherrors.ErrEmailAlreadyRegistered) {
		logger.Info("admin already exists", zap.String("email", seedAdmin.email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Info("admin seeded", zap.String("id", res.ID), zap.String("email", seedAdmin.email))
	return nil
}
