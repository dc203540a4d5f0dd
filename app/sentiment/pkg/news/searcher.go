package news

import (
	"context"
	"time"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/search"
)

// SearchFetcher adapts a search.Searcher (Tavily, SearXNG) to a Fetcher,
// restricted to the last lookbackDays days of news.
type SearchFetcher struct {
	searcher     search.Searcher
	lookbackDays int
	now          func() time.Time
}

// NewSearchFetcher wraps s. A nil searcher yields a nil fetcher.
func NewSearchFetcher(s search.Searcher, lookbackDays int) *SearchFetcher {
	if s == nil {
		return nil
	}
	if lookbackDays <= 0 {
		lookbackDays = 30
	}
	return &SearchFetcher{searcher: s, lookbackDays: lookbackDays, now: time.Now}
}

// Fetch implements Fetcher.
func (f *SearchFetcher) Fetch(ctx context.Context, query string, max int) ([]model.Article, error) {
	req := search.IPONews(query, max, f.lookbackDays, f.now())
	req.FullContent = true
	resp, err := f.searcher.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	articles := make([]model.Article, 0, len(resp.Results))
	for _, r := range resp.Results {
		articles = append(articles, model.Article{
			Title:       r.Title,
			URL:         r.URL,
			Source:      "search",
			Description: r.Content,
			Content:     r.Body(),
			PublishedAt: r.PublishedDate,
		})
	}
	return articles, nil
}
