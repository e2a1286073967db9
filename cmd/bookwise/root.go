package main

import (
	"fmt"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/logger"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	outputFmt string
)

var rootCmd = &cobra.Command{
	Use:   "bookwise",
	Short: "Bookwise recommender - genre-based book recommendations",
	Long: `Bookwise serves book recommendations ranked by genre similarity.
Run the API server, manage a development database, score genres offline,
or query a running server from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()

		if outputFmt != "text" && outputFmt != "json" {
			return fmt.Errorf("invalid --output %q (want text or json)", outputFmt)
		}
		if verbose {
			if err := logger.Initialize("debug", ""); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format: text or json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(similarityCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(healthCmd)
}

// loadConfig reads configuration and starts file logging for commands that
// touch the database
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if !verbose {
		if err := logger.Initialize(cfg.Log.Level, cfg.Log.File); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	return cfg, nil
}
