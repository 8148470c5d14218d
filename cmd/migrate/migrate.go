package main

import (
	"context"
	"database/sql"

	"go-hrms/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var migrateDir string

func init() {
	rootCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "sql migrations directory")

	for _, command := range []string{"up", "down", "status"} {
		rootCmd.AddCommand(gooseCommand(command))
	}
}

func gooseCommand(command string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: "goose " + command + " against db/migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			return goose.RunContext(cmd.Context(), command, db, migrateDir, args...)
		},
	}
}

func openDB() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := goose.OpenDBWithDriver("pgx", cfg.DB.DSN())
	if err != nil {
		return nil, err
	}
	goose.SetTableName("schema_migrations")

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
