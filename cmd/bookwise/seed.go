package main

import (
	"fmt"

	"github.com/bookwise/recommender/internal/database"
	"github.com/bookwise/recommender/internal/models"
	"github.com/bookwise/recommender/internal/seed"
	"github.com/bookwise/recommender/internal/similarity"
	"github.com/spf13/cobra"
)

var (
	seedCount   int
	seedFixture bool
	seedClean   bool
	seedMigrate bool
	seedValue   uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill a development database with books",
	Long: `Insert fake books drawn from the built-in genre table. With --test, insert
a small fixed catalogue instead. With --clean, delete every book first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedCount <= 0 && !seedFixture && !seedClean {
			return fmt.Errorf("--count must be positive, got %d", seedCount)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(cfg.Database, database.Options{LogLevel: cfg.Log.Level})
		if err != nil {
			return err
		}
		defer database.Close(db)

		if seedMigrate {
			if err := database.Migrate(db); err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		seeder := seed.NewSeeder(db, similarity.DefaultTable().Genres(), seedValue)

		if seedClean {
			if err := seeder.Clean(ctx); err != nil {
				return err
			}
			printSuccess(out, "Seed data cleaned")
			if !seedFixture && !cmd.Flags().Changed("count") {
				return nil
			}
		}

		var books []models.Book
		if seedFixture {
			books, err = seeder.SeedTest(ctx)
		} else {
			books, err = seeder.SeedDev(ctx, seedCount)
		}
		if err != nil {
			return err
		}

		if jsonOutput() {
			return printJSON(out, books)
		}
		printSuccess(out, "Seeded %d books", len(books))
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 50, "Number of random books to insert")
	seedCmd.Flags().BoolVar(&seedFixture, "test", false, "Insert the fixed test catalogue instead of random books")
	seedCmd.Flags().BoolVar(&seedClean, "clean", false, "Delete all books before seeding")
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", false, "Run migrations before seeding")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "Random seed (0 picks a new one each run)")
}
