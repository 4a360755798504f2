package di

import (
	"context"

	"github.com/google/wire"

	"sea-news-bot/internal/adapter/firestore"
	"sea-news-bot/internal/adapter/logging"
	"sea-news-bot/internal/adapter/mailer"
	"sea-news-bot/internal/adapter/openai"
	"sea-news-bot/internal/app"
	"sea-news-bot/internal/config"
	"sea-news-bot/internal/dashboard"
	"sea-news-bot/internal/domain/ports"
	"sea-news-bot/internal/secrets"
	"sea-news-bot/internal/usecase"
)

var baseSet = wire.NewSet(
	config.Load,
	provideCredentials,
	provideStore,
	wire.Bind(new(ports.ArticleStore), new(*firestore.Store)),
	wire.Bind(new(ports.MetricsStore), new(*firestore.Store)),
)

var collectorSet = wire.NewSet(
	baseSet,
	provideStdoutLogger,
	provideSummarizer,
	wire.Bind(new(ports.Summarizer), new(*openai.Client)),
	provideCollectorConfig,
	usecase.NewCollector,
)

var deliverySet = wire.NewSet(
	baseSet,
	provideDeliveryLogger,
	provideMailer,
	wire.Bind(new(ports.Mailer), new(*mailer.SMTP)),
	provideDeliveryConfig,
	usecase.NewDelivery,
)

var schedulerSet = wire.NewSet(
	baseSet,
	provideStdoutLogger,
	provideSummarizer,
	wire.Bind(new(ports.Summarizer), new(*openai.Client)),
	provideCollectorConfig,
	usecase.NewCollector,
	provideMailer,
	wire.Bind(new(ports.Mailer), new(*mailer.SMTP)),
	provideDeliveryConfig,
	usecase.NewDelivery,
	provideAppConfig,
	app.New,
)

var dashboardSet = wire.NewSet(
	baseSet,
	provideStdoutLogger,
	provideDashboard,
)

func provideStdoutLogger() ports.Logger {
	return logging.NewJSON()
}

// provideDeliveryLogger tees delivery logs to a log file so CI can upload it
// as an artifact.
func provideDeliveryLogger(cfg *config.Config) (ports.Logger, func(), error) {
	l, closer, err := logging.NewTee(cfg.DeliveryLogPath)
	if err != nil {
		return nil, nil, err
	}
	return l, func() { _ = closer.Close() }, nil
}

func provideCredentials(cfg *config.Config) (*secrets.Credentials, func(), error) {
	creds, err := secrets.Materialize(cfg.CredentialsPath, cfg.CredentialsB64)
	if err != nil {
		return nil, nil, err
	}
	return creds, func() { _ = creds.Cleanup() }, nil
}

func provideStore(creds *secrets.Credentials, logger ports.Logger) (*firestore.Store, func(), error) {
	store, err := firestore.New(context.Background(), creds.ProjectID, creds.Path, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func provideSummarizer(cfg *config.Config, logger ports.Logger) (*openai.Client, error) {
	if err := cfg.RequireCollection(); err != nil {
		return nil, err
	}
	return openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.RequestTimeout, cfg.ArticlePause, logger), nil
}

func provideMailer(cfg *config.Config, logger ports.Logger) (*mailer.SMTP, error) {
	if err := cfg.RequireDelivery(); err != nil {
		return nil, err
	}
	return mailer.NewSMTP(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, logger), nil
}

func provideCollectorConfig(cfg *config.Config) usecase.CollectorConfig {
	return usecase.CollectorConfig{ArticlePause: cfg.ArticlePause}
}

func provideDeliveryConfig(cfg *config.Config) usecase.DeliveryConfig {
	return usecase.DeliveryConfig{From: cfg.EmailFrom, Recipients: cfg.Recipients}
}

func provideAppConfig(cfg *config.Config) app.Config {
	return app.Config{
		CollectCron: cfg.CollectCron,
		DeliverCron: cfg.DeliverCron,
		JobTimeout:  cfg.JobTimeout,
	}
}

func provideDashboard(metrics ports.MetricsStore, logger ports.Logger, cfg *config.Config) *dashboard.Server {
	return dashboard.New(metrics, logger, cfg.DashboardAddr)
}
