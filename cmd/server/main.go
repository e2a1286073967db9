package main

import (
	"log"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/server"
)

func main() {
	if !config.LoadDotEnv() {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("=== Bookwise recommender starting ===")

	if err := server.Run(cfg); err != nil {
		logger.FatalWithFields("Server stopped with error", err)
	}
}
