package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flytipwatch/impact-planner/internal/config"
	"github.com/flytipwatch/impact-planner/internal/store"
	"github.com/flytipwatch/impact-planner/pkg/log"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate and seed the coefficient db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		dataStore := store.NewStore(db)
		defer dataStore.Close()

		if err := dataStore.InitialMigration(); err != nil {
			zap.S().Fatalw("running initial migration", "error", err)
		}
		if err := seedCoefficients(cfg, dataStore); err != nil {
			zap.S().Fatalw("seeding coefficients", "error", err)
		}

		zap.S().Info("Db migrated")
		return nil
	},
}
