package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/pagebridge/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the content tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, cfg, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()
		cfg.AutoMigrate = true
		db, err := app.OpenDB(cfg, log)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		log.Info("migrations applied", "driver", cfg.DBDriver)
		return nil
	},
}
