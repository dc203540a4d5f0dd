package model

import "time"

// Sentiment labels produced by the analyzer.
const (
	Positive = "Positive"
	Neutral  = "Neutral"
	Negative = "Negative"
)

// Article is a news item gathered for one IPO query.
type Article struct {
	Title       string
	URL         string
	Source      string
	Description string
	Content     string // may be truncated by the upstream provider
	PublishedAt string
}

// Text returns the body used for relevance filtering and analysis.
func (a Article) Text() string {
	if a.Content != "" {
		return a.Content
	}
	return a.Description
}

// Breakdown is the percentage distribution across the three sentiment categories.
type Breakdown struct {
	Positive float64 `json:"Positive"`
	Neutral  float64 `json:"Neutral"`
	Negative float64 `json:"Negative"`
}

// Highlights collects short bullet points per polarity.
type Highlights struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// Snippet is a representative excerpt with its own classification.
type Snippet struct {
	Text      string `json:"text"`
	Sentiment string `json:"sentiment"`
	Source    string `json:"source"`
}

// AnalysisResult is the payload returned by GET /api/sentiment.
type AnalysisResult struct {
	CompanyName          string     `json:"company_name"`
	IPODate              string     `json:"ipo_date"`
	SentimentBreakdown   Breakdown  `json:"sentiment_breakdown"`
	MarketSentimentScore float64    `json:"market_sentiment_score"`
	Verdict              string     `json:"verdict"`
	Highlights           Highlights `json:"highlights"`
	TopSnippets          []Snippet  `json:"top_snippets"`
	SourceArticleCount   int        `json:"source_article_count"`
}

// HistoryEntry is a stored analysis run.
type HistoryEntry struct {
	ID                   int64     `json:"id"`
	RunID                string    `json:"run_id"`
	CompanyName          string    `json:"company_name"`
	Verdict              string    `json:"verdict"`
	MarketSentimentScore float64   `json:"market_sentiment_score"`
	SourceArticleCount   int       `json:"source_article_count"`
	CreatedAt            time.Time `json:"created_at"`
}
