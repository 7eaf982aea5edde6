package main

import (
	"baby-tracker-go/internal/app"
	"baby-tracker-go/pkg/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and apply SQL migrations, then exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewFromEnv()

		application, err := app.New(log)
		if err != nil {
			log.Critical("app: init failed", "err", err)
			return err
		}
		defer application.Close()

		if err := application.Migrate(); err != nil {
			log.Critical("db: migrate failed", "err", err)
			return err
		}
		log.Info("db: migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
