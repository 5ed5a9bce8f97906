package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	gormrepo "clawcolony/internal/adapter/repo/gorm"
)

var errNoDSN = errors.New("database.dsn or CLAWCOLONY_DB_DSN is required")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply SQL migrations to the configured postgres database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.DSN == "" {
			return errNoDSN
		}
		db, err := openDB(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		applied, err := gormrepo.ApplyMigrations(cmd.Context(), db, cfg.Database.MigrationsDir)
		if err != nil {
			return err
		}
		logger.Info("migrations applied",
			zap.String("dir", cfg.Database.MigrationsDir),
			zap.Strings("versions", applied),
		)
		return nil
	},
}
