package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/manojkumarbalamurugan16/task/internal/db/database"
	"github.com/manojkumarbalamurugan16/task/internal/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Create or update the dbGroup and dbInputs tables",
	PreRunE: readConfig,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := logger.Init(cfg.Log); err != nil {
			return err
		}

		db, err := database.Open(&cfg)
		if err != nil {
			return err
		}

		defer func() {
			if errClose := database.Close(db); errClose != nil {
				log.Error().Err(errClose).Msg("failed to close database")
			}
		}()

		if err = database.Migrate(db); err != nil {
			return err
		}

		log.Info().Str("engine", cfg.DB.GormEngine).Msg("database migrated")

		return nil
	},
}
