//go:build wireinject

package di

import (
	"github.com/google/wire"

	"sea-news-bot/internal/app"
	"sea-news-bot/internal/dashboard"
	"sea-news-bot/internal/usecase"
)

// InitializeCollector wires the collection job. The returned cleanup closes
// the store and removes any materialized credential file; callers must run it
// on every exit path.
func InitializeCollector() (*usecase.Collector, func(), error) {
	wire.Build(collectorSet)
	return nil, nil, nil
}

// InitializeDelivery wires the delivery job.
func InitializeDelivery() (*usecase.Delivery, func(), error) {
	wire.Build(deliverySet)
	return nil, nil, nil
}

// InitializeScheduler wires the long-running cron application.
func InitializeScheduler() (*app.App, func(), error) {
	wire.Build(schedulerSet)
	return nil, nil, nil
}

// InitializeDashboard wires the analytics HTTP server.
func InitializeDashboard() (*dashboard.Server, func(), error) {
	wire.Build(dashboardSet)
	return nil, nil, nil
}
