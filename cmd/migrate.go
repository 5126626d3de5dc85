package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spendtrack/spendtrack-services/internal/events"
)

var migrateCmd = &cobra.Command{
	Use:   "init-db-migrate",
	Short: "Initialize tables and run database migrations",
	Long:  `This job ensures tables exist and then runs goose migrations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Load the config file and set up logging
		commonSetUp()

		// Migrations never publish events
		initializeDatabase(events.NoopNotifier{})
		defer expenseDB.Close()

		// Run the migrations
		log.Info().Msgf("Running migrations...")
		if err := expenseDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		log.Info().Msg("Migrations complete")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
