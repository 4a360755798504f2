// Command delivery emails today's collected news as an HTML digest and exits.
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
		log.Fatalf("delivery failed: %v", err)
	}
}

func run() error {
	delivery, cleanup, err := di.InitializeDelivery()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return delivery.Run(ctx)
}
