package model

// Article is a crawled news article as stored in the `articles` collection.
// Dates are kept as strings because the crawlers write heterogeneous formats;
// matching is done by "YYYY-MM-DD" prefix.
type Article struct {
	Title        string `firestore:"title"`
	ChineseTitle string `firestore:"chinese_title"`
	Date         string `firestore:"date"`
	Content      string `firestore:"content"`
	Source       string `firestore:"source"`
	SourceType   string `firestore:"source_type"`
	ImageURL     string `firestore:"image_url"`
}

// StoredArticle pairs an Article with its Firestore document ID.
type StoredArticle struct {
	ID      string
	Article Article
}

// HasRequiredFields reports whether the article carries everything the
// collection pipeline needs before it is worth summarizing.
func (a Article) HasRequiredFields() bool {
	return a.Title != "" && a.Date != "" && a.Content != "" && a.Source != ""
}
