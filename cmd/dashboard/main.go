// Command dashboard serves the email engagement analytics API and the
// open/click tracking endpoints.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"sea-news-bot/internal/di"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("dashboard failed: %v", err)
	}
}

func run() error {
	server, cleanup, err := di.InitializeDashboard()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
