package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sea-news-bot/internal/domain/model"
	"sea-news-bot/internal/domain/ports"
)

// ErrNoNews is returned when today_news holds nothing to deliver.
var ErrNoNews = errors.New("no news items available to send")

// Delivery emails the current today_news collection as an HTML digest.
type Delivery struct {
	store   ports.ArticleStore
	mailer  ports.Mailer
	metrics ports.MetricsStore
	logger  ports.Logger
	from    string
	to      []string
	now     func() time.Time
}

// DeliveryConfig carries the sender identity and recipient list.
type DeliveryConfig struct {
	From       string
	Recipients []string
}

// NewDelivery constructs a Delivery use case. The metrics store may be nil,
// in which case sends are not recorded.
func NewDelivery(
	store ports.ArticleStore,
	mailer ports.Mailer,
	metrics ports.MetricsStore,
	logger ports.Logger,
	cfg DeliveryConfig,
) *Delivery {
	return &Delivery{
		store:   store,
		mailer:  mailer,
		metrics: metrics,
		logger:  logger,
		from:    cfg.From,
		to:      cfg.Recipients,
		now:     time.Now,
	}
}

// Run loads today's news, renders the digest and sends it.
func (d *Delivery) Run(ctx context.Context) error {
	items, err := d.store.ListTodayNews(ctx)
	if err != nil {
		return fmt.Errorf("load today_news: %w", err)
	}
	if len(items) == 0 {
		d.logger.Error(ctx, "no news items available to send")
		return ErrNoNews
	}
	d.logger.Info(ctx, "retrieved items from today_news", "count", len(items))

	date := d.now().UTC().Format("2006-01-02")
	subject, html, err := renderDigest(date, items)
	if err != nil {
		return err
	}

	email := model.Email{
		From:       d.from,
		Recipients: d.to,
		Subject:    subject,
		HTMLBody:   html,
	}
	if err := d.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	d.logger.Info(ctx, "email sent", "recipients", len(d.to), "items", len(items))

	d.recordSent(ctx, subject, len(items), date)
	return nil
}

func (d *Delivery) recordSent(ctx context.Context, subject string, itemCount int, date string) {
	if d.metrics == nil {
		return
	}
	record := model.SentRecord{
		MessageID:  fmt.Sprintf("digest_%s_%d", date, d.now().UnixMilli()),
		Recipients: d.to,
		Subject:    subject,
		ItemCount:  itemCount,
		Timestamp:  d.now().UTC(),
	}
	if err := d.metrics.RecordSent(ctx, record); err != nil {
		// Analytics failures must not fail a delivered digest.
		d.logger.Error(ctx, "failed to record sent email", "error", err)
	}
}
