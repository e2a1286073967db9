package main

import (
	"github.com/bookwise/recommender/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the books table and indexes in a development database",
	Long: `Create the books table and its indexes. The production table is owned
by the library application; use this for local and test databases only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(cfg.Database, database.Options{LogLevel: cfg.Log.Level})
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}

		printSuccess(cmd.OutOrStdout(), "All migrations completed successfully")
		return nil
	},
}
