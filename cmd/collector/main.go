// Command collector runs the daily news collection job once and exits.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"sea-news-bot/internal/di"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("collection failed: %v", err)
	}
}

// run keeps cleanup on the defer path so the materialized credential file is
// removed even when the job fails.
func run() error {
	collector, cleanup, err := di.InitializeCollector()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return collector.Run(ctx)
}
