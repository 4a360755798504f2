package ports

import (
	"context"

	"sea-news-bot/internal/domain/model"
)

// Summarizer produces English and Chinese summaries of article content.
type Summarizer interface {
	Summarize(ctx context.Context, content string) (model.Summaries, error)
}
