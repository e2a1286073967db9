package main

import (
	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recommendation API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger.Log.Info("=== Bookwise recommender starting ===")
		return server.Serve(cmd.Context(), cfg)
	},
}
