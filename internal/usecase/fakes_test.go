package usecase

import (
	"context"
	"fmt"
	"time"

	"sea-news-bot/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type fakeStore struct {
	articles  []model.StoredArticle
	todayNews []model.NewsItem
	saved     map[string]model.NewsItem

	ensured   bool
	purged    bool
	purgeErr  error
	listErr   error
	saveErr   error
	saveFails int // fail the first N saves
	listToday error
	saveCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string]model.NewsItem{}}
}

func (f *fakeStore) EnsureTodayNews(ctx context.Context) error {
	f.ensured = true
	return nil
}

func (f *fakeStore) PurgeTodayNews(ctx context.Context) (int, error) {
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}
	f.purged = true
	n := len(f.todayNews)
	f.todayNews = nil
	return n, nil
}

func (f *fakeStore) ListArticles(ctx context.Context) ([]model.StoredArticle, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.articles, nil
}

func (f *fakeStore) SaveNewsItem(ctx context.Context, id string, item model.NewsItem) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.saveFails > 0 {
		f.saveFails--
		return fmt.Errorf("transient save failure")
	}
	f.saved[id] = item
	f.todayNews = append(f.todayNews, item)
	return nil
}

func (f *fakeStore) ListTodayNews(ctx context.Context) ([]model.NewsItem, error) {
	if f.listToday != nil {
		return nil, f.listToday
	}
	return f.todayNews, nil
}

func (f *fakeStore) CountTodayNews(ctx context.Context) (int, map[string]int, error) {
	bySource := map[string]int{}
	for _, item := range f.todayNews {
		bySource[item.ArticleInfo.Source]++
	}
	return len(f.todayNews), bySource, nil
}

type fakeSummarizer struct {
	fn    func(content string) (model.Summaries, error)
	calls int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, content string) (model.Summaries, error) {
	f.calls++
	if f.fn != nil {
		return f.fn(content)
	}
	return model.Summaries{English: "English summary.", Chinese: "中文摘要一。中文摘要二。"}, nil
}

type fakeMailer struct {
	sent []model.Email
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, email model.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

type fakeMetrics struct {
	sent      []model.SentRecord
	recordErr error
}

func (f *fakeMetrics) RecordSent(ctx context.Context, record model.SentRecord) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.sent = append(f.sent, record)
	return nil
}

func (f *fakeMetrics) RecordOpen(ctx context.Context, event model.OpenEvent) error { return nil }

func (f *fakeMetrics) RecordClick(ctx context.Context, event model.ClickEvent) error { return nil }

func (f *fakeMetrics) MetricsSince(ctx context.Context, since time.Time) (model.EmailMetrics, error) {
	return model.EmailMetrics{Sent: f.sent}, nil
}
