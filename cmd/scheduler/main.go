// Command scheduler runs the collection and delivery jobs on their cron
// schedules until interrupted.
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
		log.Fatalf("scheduler failed: %v", err)
	}
}

func run() error {
	application, cleanup, err := di.InitializeScheduler()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}
