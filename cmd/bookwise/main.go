package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookwise/recommender/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Close()

	if err != nil {
		printError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
