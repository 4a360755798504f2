package firestore

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/iterator"

	"sea-news-bot/internal/domain/model"
	"sea-news-bot/internal/domain/ports"
)

const (
	sentCollection   = "email_sent"
	opensCollection  = "email_opens"
	clicksCollection = "email_clicks"
)

var _ ports.MetricsStore = (*Store)(nil)

// RecordSent appends a row to email_sent.
func (s *Store) RecordSent(ctx context.Context, record model.SentRecord) error {
	if _, _, err := s.client.Collection(sentCollection).Add(ctx, record); err != nil {
		return fmt.Errorf("record sent email: %w", err)
	}
	return nil
}

// RecordOpen appends a row to email_opens.
func (s *Store) RecordOpen(ctx context.Context, event model.OpenEvent) error {
	if _, _, err := s.client.Collection(opensCollection).Add(ctx, event); err != nil {
		return fmt.Errorf("record open: %w", err)
	}
	return nil
}

// RecordClick appends a row to email_clicks.
func (s *Store) RecordClick(ctx context.Context, event model.ClickEvent) error {
	if _, _, err := s.client.Collection(clicksCollection).Add(ctx, event); err != nil {
		return fmt.Errorf("record click: %w", err)
	}
	return nil
}

// MetricsSince reads all engagement rows with timestamp >= since.
func (s *Store) MetricsSince(ctx context.Context, since time.Time) (model.EmailMetrics, error) {
	var metrics model.EmailMetrics

	iterSent := s.client.Collection(sentCollection).
		Where("timestamp", ">=", since).Documents(ctx)
	defer iterSent.Stop()
	for {
		doc, err := iterSent.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return metrics, fmt.Errorf("iterate email_sent: %w", err)
		}
		var row model.SentRecord
		if err := doc.DataTo(&row); err != nil {
			s.logger.Warn(ctx, "skipping undecodable sent record", "doc_id", doc.Ref.ID, "error", err)
			continue
		}
		metrics.Sent = append(metrics.Sent, row)
	}

	iterOpens := s.client.Collection(opensCollection).
		Where("timestamp", ">=", since).Documents(ctx)
	defer iterOpens.Stop()
	for {
		doc, err := iterOpens.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return metrics, fmt.Errorf("iterate email_opens: %w", err)
		}
		var row model.OpenEvent
		if err := doc.DataTo(&row); err != nil {
			s.logger.Warn(ctx, "skipping undecodable open event", "doc_id", doc.Ref.ID, "error", err)
			continue
		}
		metrics.Opens = append(metrics.Opens, row)
	}

	iterClicks := s.client.Collection(clicksCollection).
		Where("timestamp", ">=", since).Documents(ctx)
	defer iterClicks.Stop()
	for {
		doc, err := iterClicks.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return metrics, fmt.Errorf("iterate email_clicks: %w", err)
		}
		var row model.ClickEvent
		if err := doc.DataTo(&row); err != nil {
			s.logger.Warn(ctx, "skipping undecodable click event", "doc_id", doc.Ref.ID, "error", err)
			continue
		}
		metrics.Clicks = append(metrics.Clicks, row)
	}

	return metrics, nil
}
