package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sea-news-bot/internal/domain/model"
)

// 22:30 UTC on March 10 is already March 11 in UTC+4.
var fixedNow = time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC)

func newTestCollector(store *fakeStore, summarizer *fakeSummarizer) *Collector {
	c := NewCollector(store, summarizer, nopLogger{}, CollectorConfig{ArticlePause: 0})
	c.now = func() time.Time { return fixedNow }
	return c
}

func TestCollectorRunFiltersByNewsroomDate(t *testing.T) {
	store := newFakeStore()
	store.articles = []model.StoredArticle{
		{ID: "match", Article: model.Article{
			Title: "Gulf summit opens", Date: "2025-03-11 08:00:00",
			Content: "Leaders gathered for the summit.", Source: "ReutersCrawler",
		}},
		{ID: "stale", Article: model.Article{
			Title: "Old story", Date: "2025-03-09",
			Content: "Yesterday's content.", Source: "Reuters",
		}},
		{ID: "nodate", Article: model.Article{
			Title: "Undated", Content: "Something.", Source: "Reuters",
		}},
	}
	summarizer := &fakeSummarizer{}

	c := newTestCollector(store, summarizer)
	require.NoError(t, c.Run(context.Background()))

	assert.True(t, store.ensured)
	assert.True(t, store.purged)
	require.Len(t, store.saved, 1)

	for id, item := range store.saved {
		assert.True(t, strings.HasPrefix(id, "2025-03-11_Reuters_"),
			"doc ID %q should start with date and cleaned source", id)
		assert.Equal(t, "Gulf summit opens", item.ArticleInfo.Title)
		assert.Equal(t, "Reuters", item.ArticleInfo.Source)
		assert.Equal(t, "ReutersCrawler", item.ArticleInfo.OriginalSource)
		assert.Equal(t, "match", item.ArticleInfo.OriginalDocID)
		assert.Equal(t, "2025-03-11", item.ProcessingInfo.TargetDate)
		assert.Equal(t, "UTC+4", item.ProcessingInfo.Timezone)
		assert.Equal(t, "processed", item.ProcessingInfo.Status)
		assert.Equal(t, 5, item.Metadata.WordCount)
		assert.Equal(t, 1, item.Metadata.ArticleNumber)
		assert.Equal(t, "unknown", item.Metadata.SourceType)
		assert.False(t, item.Metadata.HasImage)
		assert.Equal(t, "English summary.", item.EnglishSummary)
		assert.Equal(t, "中文摘要一。中文摘要二。", item.ChineseSummary)
	}
}

func TestCollectorRunSkipsIncompleteArticles(t *testing.T) {
	store := newFakeStore()
	store.articles = []model.StoredArticle{
		{ID: "no-content", Article: model.Article{
			Title: "Missing body", Date: "2025-03-11", Source: "AFP",
		}},
		{ID: "no-title", Article: model.Article{
			Date: "2025-03-11", Content: "Body only.", Source: "AFP",
		}},
	}
	summarizer := &fakeSummarizer{}

	c := newTestCollector(store, summarizer)
	require.NoError(t, c.Run(context.Background()))

	assert.Empty(t, store.saved)
	assert.Zero(t, summarizer.calls)
}

func TestCollectorRunContinuesOnSummaryFailure(t *testing.T) {
	store := newFakeStore()
	store.articles = []model.StoredArticle{
		{ID: "bad", Article: model.Article{
			Title: "Fails", Date: "2025-03-11", Content: "poison", Source: "AFP",
		}},
		{ID: "good", Article: model.Article{
			Title: "Works", Date: "2025-03-11", Content: "fine content", Source: "AFP",
		}},
	}
	summarizer := &fakeSummarizer{fn: func(content string) (model.Summaries, error) {
		if content == "poison" {
			return model.Summaries{}, fmt.Errorf("api unavailable")
		}
		return model.Summaries{English: "ok", Chinese: "好的。没问题。"}, nil
	}}

	c := newTestCollector(store, summarizer)
	require.NoError(t, c.Run(context.Background()))

	require.Len(t, store.saved, 1)
	for _, item := range store.saved {
		assert.Equal(t, "Works", item.ArticleInfo.Title)
	}
	// 3 failed attempts for the poison article plus 1 for the good one.
	assert.Equal(t, 4, summarizer.calls)
}

func TestCollectorRunRejectsEmptySummaries(t *testing.T) {
	store := newFakeStore()
	store.articles = []model.StoredArticle{
		{ID: "a", Article: model.Article{
			Title: "T", Date: "2025-03-11", Content: "C", Source: "AFP",
		}},
	}
	summarizer := &fakeSummarizer{fn: func(string) (model.Summaries, error) {
		return model.Summaries{English: "only english"}, nil
	}}

	c := newTestCollector(store, summarizer)
	require.NoError(t, c.Run(context.Background()))

	assert.Empty(t, store.saved)
	assert.Equal(t, maxSummaryAttempts, summarizer.calls)
}

func TestCollectorRunRetriesSaves(t *testing.T) {
	store := newFakeStore()
	store.saveFails = 2
	store.articles = []model.StoredArticle{
		{ID: "a", Article: model.Article{
			Title: "T", Date: "2025-03-11", Content: "C", Source: "AFP",
		}},
	}

	c := newTestCollector(store, &fakeSummarizer{})
	require.NoError(t, c.Run(context.Background()))

	assert.Len(t, store.saved, 1)
	assert.Equal(t, 3, store.saveCalls)
}

func TestCollectorRunEmptyArticlesIsNotAnError(t *testing.T) {
	store := newFakeStore()
	c := newTestCollector(store, &fakeSummarizer{})
	require.NoError(t, c.Run(context.Background()))
	assert.Empty(t, store.saved)
}

func TestCollectorRunPurgeErrorAborts(t *testing.T) {
	store := newFakeStore()
	store.purgeErr = fmt.Errorf("firestore down")
	c := newTestCollector(store, &fakeSummarizer{})
	assert.ErrorContains(t, c.Run(context.Background()), "purge today_news")
}

func TestCollectorRunCountsPerSource(t *testing.T) {
	store := newFakeStore()
	store.articles = []model.StoredArticle{
		{ID: "1", Article: model.Article{Title: "A", Date: "2025-03-11", Content: "x", Source: "XinhuaCrawler"}},
		{ID: "2", Article: model.Article{Title: "B", Date: "2025-03-11", Content: "y", Source: "XinhuaCrawler"}},
	}

	c := newTestCollector(store, &fakeSummarizer{})
	require.NoError(t, c.Run(context.Background()))

	require.Len(t, store.saved, 2)
	numbers := map[int]bool{}
	for id, item := range store.saved {
		assert.True(t, strings.HasPrefix(id, "2025-03-11_Xinhua_"))
		numbers[item.Metadata.ArticleNumber] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, numbers)
}

func TestCleanSourceName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ReutersCrawler", "Reuters"},
		{"Reuters", "Reuters"},
		{"Crawler", ""},
		{"", ""},
		{"CrawlerNews", "CrawlerNews"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanSourceName(tt.in), "input %q", tt.in)
	}
}
