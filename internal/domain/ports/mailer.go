package ports

import (
	"context"

	"sea-news-bot/internal/domain/model"
)

// Mailer delivers a rendered email to its recipients.
type Mailer interface {
	Send(ctx context.Context, email model.Email) error
}
