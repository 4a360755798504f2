package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"sea-news-bot/internal/domain/model"
	"sea-news-bot/internal/domain/ports"
)

// Articles are matched against "today" in the newsroom timezone, UTC+4.
const newsroomTimezone = "Asia/Dubai"

const (
	maxSummaryAttempts = 3
	maxSaveAttempts    = 3
)

// Collector copies today's crawled articles into the today_news collection,
// enriching each with English and Chinese summaries.
type Collector struct {
	store      ports.ArticleStore
	summarizer ports.Summarizer
	logger     ports.Logger
	pause      time.Duration
	now        func() time.Time
	location   *time.Location
}

// CollectorConfig controls optional behaviours of the collector.
type CollectorConfig struct {
	// ArticlePause is the delay between articles and between retry attempts,
	// rate limiting the summarization API.
	ArticlePause time.Duration
}

// NewCollector constructs a Collector.
func NewCollector(
	store ports.ArticleStore,
	summarizer ports.Summarizer,
	logger ports.Logger,
	cfg CollectorConfig,
) *Collector {
	loc, err := time.LoadLocation(newsroomTimezone)
	if err != nil {
		// Asia/Dubai is fixed UTC+4 with no DST.
		loc = time.FixedZone("UTC+4", 4*60*60)
	}
	return &Collector{
		store:      store,
		summarizer: summarizer,
		logger:     logger,
		pause:      cfg.ArticlePause,
		now:        time.Now,
		location:   loc,
	}
}

// Run executes the collection workflow: purge yesterday's today_news, scan
// the articles collection for articles dated today (UTC+4), summarize and
// save each. Individual article failures are logged and skipped; only store
// level failures abort the run.
func (c *Collector) Run(ctx context.Context) error {
	start := c.now()
	today := start.In(c.location).Format("2006-01-02")
	c.logger.Info(ctx, "starting collection", "target_date", today, "timezone", "UTC+4")

	if err := c.store.EnsureTodayNews(ctx); err != nil {
		return fmt.Errorf("ensure today_news collection: %w", err)
	}

	purged, err := c.store.PurgeTodayNews(ctx)
	if err != nil {
		return fmt.Errorf("purge today_news: %w", err)
	}
	if purged > 0 {
		c.logger.Info(ctx, "deleted old documents from today_news", "count", purged)
	} else {
		c.logger.Info(ctx, "no old documents to delete")
	}

	articles, err := c.store.ListArticles(ctx)
	if err != nil {
		return fmt.Errorf("list articles: %w", err)
	}
	if len(articles) == 0 {
		c.logger.Warn(ctx, "no documents found in articles collection")
		return nil
	}

	var processed, matched, saved int
	sourceCounts := map[string]int{}

	for _, stored := range articles {
		if err := ctx.Err(); err != nil {
			return err
		}

		processed++
		if processed%100 == 0 {
			c.logger.Info(ctx, "processing progress", "processed", processed)
		}

		article := stored.Article
		if article.Date == "" {
			c.logger.Warn(ctx, "skipping article without date", "doc_id", stored.ID)
			continue
		}
		if !strings.HasPrefix(article.Date, today) {
			continue
		}

		matched++
		c.logger.Info(ctx, "found matching article",
			"doc_id", stored.ID, "date", article.Date, "matched", matched)

		if !article.HasRequiredFields() {
			c.logger.Warn(ctx, "skipping article with missing required fields", "doc_id", stored.ID)
			continue
		}

		source := cleanSourceName(article.Source)
		sourceCounts[source]++

		summaries, err := c.summarizeWithRetry(ctx, stored.ID, article.Content)
		if err != nil {
			c.logger.Error(ctx, "skipping article, summaries failed", "doc_id", stored.ID, "error", err)
			continue
		}

		item := c.buildNewsItem(stored, article, source, today, sourceCounts[source], summaries)
		if err := c.saveWithRetry(ctx, today, source, sourceCounts[source], item); err != nil {
			c.logger.Error(ctx, "failed to save article", "doc_id", stored.ID, "error", err)
			continue
		}
		saved++
		c.logger.Info(ctx, "saved article", "saved", saved)

		c.sleep(ctx)
	}

	c.logger.Info(ctx, "collection finished",
		"processed", processed,
		"matched", matched,
		"saved", saved,
		"target_date", today,
		"duration", c.now().Sub(start))

	c.logStats(ctx)
	return nil
}

func (c *Collector) summarizeWithRetry(ctx context.Context, docID, content string) (model.Summaries, error) {
	var lastErr error
	for attempt := 1; attempt <= maxSummaryAttempts; attempt++ {
		summaries, err := c.summarizer.Summarize(ctx, content)
		if err == nil && summaries.English != "" && summaries.Chinese != "" {
			return summaries, nil
		}
		if err == nil {
			err = fmt.Errorf("summarizer returned empty summaries")
		}
		lastErr = err
		if attempt < maxSummaryAttempts {
			c.logger.Warn(ctx, "summary generation failed, retrying",
				"doc_id", docID, "attempt", attempt, "error", err)
			c.sleep(ctx)
		}
	}
	return model.Summaries{}, fmt.Errorf("after %d attempts: %w", maxSummaryAttempts, lastErr)
}

func (c *Collector) saveWithRetry(ctx context.Context, today, source string, ordinal int, item model.NewsItem) error {
	var lastErr error
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		id := fmt.Sprintf("%s_%s_%d_%d", today, source, c.now().UnixMilli(), ordinal)
		if err := c.store.SaveNewsItem(ctx, id, item); err != nil {
			lastErr = err
			if attempt < maxSaveAttempts {
				c.logger.Warn(ctx, "save attempt failed, retrying", "attempt", attempt, "error", err)
				c.sleep(ctx)
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("after %d attempts: %w", maxSaveAttempts, lastErr)
}

func (c *Collector) buildNewsItem(stored model.StoredArticle, article model.Article, source, today string, ordinal int, summaries model.Summaries) model.NewsItem {
	return model.NewsItem{
		ArticleInfo: model.ArticleInfo{
			Title:          article.Title,
			ChineseTitle:   article.ChineseTitle,
			Date:           article.Date,
			Content:        article.Content,
			Source:         source,
			OriginalSource: article.Source,
			OriginalDocID:  stored.ID,
		},
		ProcessingInfo: model.ProcessingInfo{
			ProcessedAt: c.now().In(c.location).Format("2006-01-02 15:04:05"),
			Timezone:    "UTC+4",
			TargetDate:  today,
			Status:      "processed",
		},
		Metadata: model.ItemMetadata{
			WordCount:     len(strings.Fields(article.Content)),
			HasImage:      article.ImageURL != "",
			SourceType:    sourceTypeOrUnknown(article.SourceType),
			ArticleNumber: ordinal,
		},
		EnglishSummary: summaries.English,
		ChineseSummary: summaries.Chinese,
	}
}

func (c *Collector) logStats(ctx context.Context) {
	total, bySource, err := c.store.CountTodayNews(ctx)
	if err != nil {
		c.logger.Error(ctx, "failed to count today_news records", "error", err)
		return
	}

	sources := make([]string, 0, len(bySource))
	for s := range bySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	c.logger.Info(ctx, "today_news collection statistics", "total", total)
	for _, s := range sources {
		c.logger.Info(ctx, "source breakdown", "source", s, "articles", bySource[s])
	}
}

func (c *Collector) sleep(ctx context.Context) {
	if c.pause <= 0 {
		return
	}
	select {
	case <-time.After(c.pause):
	case <-ctx.Done():
	}
}

// cleanSourceName strips the crawler suffix some sources carry, e.g.
// "ReutersCrawler" becomes "Reuters".
func cleanSourceName(source string) string {
	return strings.TrimSuffix(source, "Crawler")
}

func sourceTypeOrUnknown(t string) string {
	if t == "" {
		return "unknown"
	}
	return t
}
