// Package firestore implements the article and metrics stores over Cloud
// Firestore.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"sea-news-bot/internal/domain/model"
	"sea-news-bot/internal/domain/ports"
)

const (
	articlesCollection  = "articles"
	todayNewsCollection = "today_news"

	maxReadRetries = 2
)

// Store provides Firestore-backed access to the news collections.
type Store struct {
	client *firestore.Client
	logger ports.Logger
}

var _ ports.ArticleStore = (*Store)(nil)

// New connects to Firestore using the given service account file and project.
func New(ctx context.Context, projectID, credentialsPath string, logger ports.Logger) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &Store{client: client, logger: logger}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// EnsureTodayNews creates and immediately deletes an initialization document
// so the today_news collection exists even when empty.
func (s *Store) EnsureTodayNews(ctx context.Context) error {
	ref := s.client.Collection(todayNewsCollection).Doc("initialization")
	_, err := ref.Set(ctx, map[string]interface{}{
		"initialization_time": time.Now().UTC().Format("2006-01-02 15:04:05"),
		"status":              "collection_created",
	})
	if err != nil {
		return fmt.Errorf("create initialization doc: %w", err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete initialization doc: %w", err)
	}
	return nil
}

// PurgeTodayNews removes every document from today_news via a bulk writer.
// It fails if any individual delete fails, so a collection run never starts
// on top of leftover documents.
func (s *Store) PurgeTodayNews(ctx context.Context) (int, error) {
	iter := s.client.Collection(todayNewsCollection).Documents(ctx)
	defer iter.Stop()

	writer := s.client.BulkWriter(ctx)
	var jobs []bulkJob
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("iterate today_news: %w", err)
		}
		job, err := writer.Delete(doc.Ref)
		if err != nil {
			return 0, fmt.Errorf("queue delete: %w", err)
		}
		jobs = append(jobs, job)
	}
	writer.End()

	if err := awaitBulkJobs(jobs); err != nil {
		return 0, fmt.Errorf("purge today_news: %w", err)
	}
	return len(jobs), nil
}

// bulkJob is the result surface of *firestore.BulkWriterJob.
type bulkJob interface {
	Results() (*firestore.WriteResult, error)
}

func awaitBulkJobs(jobs []bulkJob) error {
	failed := 0
	var first error
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			failed++
			if first == nil {
				first = err
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d deletes failed: %w", failed, len(jobs), first)
	}
	return nil
}

// ListArticles streams the entire articles collection, retrying transient
// failures with exponential backoff.
func (s *Store) ListArticles(ctx context.Context) ([]model.StoredArticle, error) {
	var out []model.StoredArticle

	operation := func() error {
		out = out[:0]
		iter := s.client.Collection(articlesCollection).Documents(ctx)
		defer iter.Stop()

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				return nil
			}
			if err != nil {
				return fmt.Errorf("iterate articles: %w", err)
			}

			var article model.Article
			if err := doc.DataTo(&article); err != nil {
				s.logger.Warn(ctx, "skipping undecodable article", "doc_id", doc.Ref.ID, "error", err)
				continue
			}
			out = append(out, model.StoredArticle{ID: doc.Ref.ID, Article: article})
		}
	}

	if err := s.retry(ctx, operation); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveNewsItem writes a processed item under the given document ID.
func (s *Store) SaveNewsItem(ctx context.Context, id string, item model.NewsItem) error {
	if _, err := s.client.Collection(todayNewsCollection).Doc(id).Set(ctx, item); err != nil {
		return fmt.Errorf("save news item %s: %w", id, err)
	}
	return nil
}

// ListTodayNews returns every document in today_news.
func (s *Store) ListTodayNews(ctx context.Context) ([]model.NewsItem, error) {
	var out []model.NewsItem

	operation := func() error {
		out = out[:0]
		iter := s.client.Collection(todayNewsCollection).Documents(ctx)
		defer iter.Stop()

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				return nil
			}
			if err != nil {
				return fmt.Errorf("iterate today_news: %w", err)
			}

			var item model.NewsItem
			if err := doc.DataTo(&item); err != nil {
				s.logger.Warn(ctx, "skipping undecodable news item", "doc_id", doc.Ref.ID, "error", err)
				continue
			}
			out = append(out, item)
		}
	}

	if err := s.retry(ctx, operation); err != nil {
		return nil, err
	}
	return out, nil
}

// CountTodayNews returns the total and per-source document counts.
func (s *Store) CountTodayNews(ctx context.Context) (int, map[string]int, error) {
	items, err := s.ListTodayNews(ctx)
	if err != nil {
		return 0, nil, err
	}

	bySource := make(map[string]int)
	for _, item := range items {
		source := item.ArticleInfo.Source
		if source == "" {
			source = "unknown"
		}
		bySource[source]++
	}
	return len(items), bySource, nil
}

func (s *Store) retry(ctx context.Context, operation func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxReadRetries), ctx)
	return backoff.RetryNotify(operation, policy, func(err error, next time.Duration) {
		s.logger.Warn(ctx, "firestore read failed, retrying", "error", err, "next_in", next)
	})
}
