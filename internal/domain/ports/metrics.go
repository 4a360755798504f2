package ports

import (
	"context"
	"time"

	"sea-news-bot/internal/domain/model"
)

// MetricsStore records and reads email engagement events.
type MetricsStore interface {
	RecordSent(ctx context.Context, record model.SentRecord) error
	RecordOpen(ctx context.Context, event model.OpenEvent) error
	RecordClick(ctx context.Context, event model.ClickEvent) error
	// MetricsSince returns all engagement rows with a timestamp at or after
	// the given instant.
	MetricsSince(ctx context.Context, since time.Time) (model.EmailMetrics, error)
}
