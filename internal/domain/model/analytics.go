package model

import "time"

// SentRecord is written to the email_sent collection after a digest goes out.
type SentRecord struct {
	MessageID  string    `firestore:"message_id"`
	Recipients []string  `firestore:"recipients"`
	Subject    string    `firestore:"subject"`
	ItemCount  int       `firestore:"item_count"`
	Timestamp  time.Time `firestore:"timestamp"`
}

// OpenEvent is written to the email_opens collection by the tracking pixel.
type OpenEvent struct {
	MessageID string    `firestore:"message_id"`
	TimeSpent float64   `firestore:"time_spent"`
	Timestamp time.Time `firestore:"timestamp"`
}

// ClickEvent is written to the email_clicks collection by the click redirect.
type ClickEvent struct {
	MessageID string    `firestore:"message_id"`
	URL       string    `firestore:"url"`
	Timestamp time.Time `firestore:"timestamp"`
}

// EmailMetrics aggregates engagement over a time window.
type EmailMetrics struct {
	Sent   []SentRecord
	Opens  []OpenEvent
	Clicks []ClickEvent
}

// OpenRate is opens over sends, zero when nothing was sent.
func (m EmailMetrics) OpenRate() float64 {
	if len(m.Sent) == 0 {
		return 0
	}
	return float64(len(m.Opens)) / float64(len(m.Sent))
}

// ClickThroughRate is clicks over opens, zero when nothing was opened.
func (m EmailMetrics) ClickThroughRate() float64 {
	if len(m.Opens) == 0 {
		return 0
	}
	return float64(len(m.Clicks)) / float64(len(m.Opens))
}
