package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"sea-news-bot/internal/domain/ports"
	"sea-news-bot/internal/usecase"
)

// App manages the lifecycle of the collection and delivery schedulers.
type App struct {
	cron       *cron.Cron
	collector  *usecase.Collector
	delivery   *usecase.Delivery
	logger     ports.Logger
	collectAt  string
	deliverAt  string
	jobTimeout time.Duration
}

// Config carries the cron expressions and the per-run timeout.
type Config struct {
	CollectCron string
	DeliverCron string
	JobTimeout  time.Duration
}

// New constructs an App instance. Schedules are interpreted in UTC, matching
// the upstream article dates keyed to a fixed-offset timezone.
func New(collector *usecase.Collector, delivery *usecase.Delivery, logger ports.Logger, cfg Config) *App {
	return &App{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		collector:  collector,
		delivery:   delivery,
		logger:     logger,
		collectAt:  cfg.CollectCron,
		deliverAt:  cfg.DeliverCron,
		jobTimeout: cfg.JobTimeout,
	}
}

// Run schedules both jobs and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduleJobs(); err != nil {
		return err
	}

	a.logger.Info(ctx, "starting scheduler",
		"collect_cron", a.collectAt, "deliver_cron", a.deliverAt)
	a.cron.Start()

	<-ctx.Done()
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	a.logger.Info(context.Background(), "scheduler stopped")
	return nil
}

func (a *App) scheduleJobs() error {
	if _, err := a.cron.AddFunc(a.collectAt, func() {
		a.runJob("collection", a.collector.Run)
	}); err != nil {
		return err
	}

	if _, err := a.cron.AddFunc(a.deliverAt, func() {
		a.runJob("delivery", a.delivery.Run)
	}); err != nil {
		return err
	}

	return nil
}

func (a *App) runJob(name string, job func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.jobTimeout)
	defer cancel()

	a.logger.Info(ctx, "scheduled job starting", "job", name)
	if err := job(ctx); err != nil {
		a.logger.Error(ctx, "scheduled job failed", "job", name, "error", err)
		return
	}
	a.logger.Info(ctx, "scheduled job finished", "job", name)
}
