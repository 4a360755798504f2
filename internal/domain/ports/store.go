package ports

import (
	"context"

	"sea-news-bot/internal/domain/model"
)

// ArticleStore provides access to the crawled articles and the curated
// today_news collection.
type ArticleStore interface {
	// EnsureTodayNews makes sure the today_news collection exists.
	EnsureTodayNews(ctx context.Context) error
	// PurgeTodayNews deletes every document from today_news and returns how
	// many were removed.
	PurgeTodayNews(ctx context.Context) (int, error)
	// ListArticles returns every document in the articles collection.
	ListArticles(ctx context.Context) ([]model.StoredArticle, error)
	// SaveNewsItem writes a processed item to today_news under the given ID.
	SaveNewsItem(ctx context.Context, id string, item model.NewsItem) error
	// ListTodayNews returns every document currently in today_news.
	ListTodayNews(ctx context.Context) ([]model.NewsItem, error)
	// CountTodayNews returns the total document count and a per-source
	// breakdown of today_news.
	CountTodayNews(ctx context.Context) (int, map[string]int, error)
}
