package model

// ArticleInfo is the article payload embedded in a today_news document.
type ArticleInfo struct {
	Title          string `firestore:"title"`
	ChineseTitle   string `firestore:"chinese_title"`
	Date           string `firestore:"date"`
	Content        string `firestore:"content"`
	Source         string `firestore:"source"`
	OriginalSource string `firestore:"original_source"`
	OriginalDocID  string `firestore:"original_doc_id"`
}

// ProcessingInfo records when and against which target date an article was
// processed.
type ProcessingInfo struct {
	ProcessedAt string `firestore:"processed_at"`
	Timezone    string `firestore:"timezone"`
	TargetDate  string `firestore:"target_date"`
	Status      string `firestore:"status"`
}

// ItemMetadata carries derived attributes of a processed article.
type ItemMetadata struct {
	WordCount     int    `firestore:"word_count"`
	HasImage      bool   `firestore:"has_image"`
	SourceType    string `firestore:"source_type"`
	ArticleNumber int    `firestore:"article_number"`
}

// NewsItem is a document in the today_news collection: the article enriched
// with processing info and bilingual summaries.
type NewsItem struct {
	ArticleInfo    ArticleInfo    `firestore:"article_info"`
	ProcessingInfo ProcessingInfo `firestore:"processing_info"`
	Metadata       ItemMetadata   `firestore:"metadata"`
	EnglishSummary string         `firestore:"English_summary"`
	ChineseSummary string         `firestore:"Chinese_summary"`
}

// Summaries holds the bilingual output of the summarizer.
type Summaries struct {
	English string
	Chinese string
}
