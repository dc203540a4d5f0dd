// Package search abstracts the web search backends used as IPO news sources.
package search

import (
	"context"
	"strings"
	"time"
)

// Searcher is a web or news search backend.
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Topic narrows a search to a category of pages.
type Topic string

const (
	TopicGeneral Topic = "general"
	TopicNews    Topic = "news"
)

// Request is a provider-neutral search request. Zero Since or Until leaves
// that side of the window open.
type Request struct {
	Query       string
	Topic       Topic
	Limit       int
	FullContent bool
	Since       time.Time
	Until       time.Time
}

// IPONews builds the request for recent coverage of an IPO, looking back
// days from now.
func IPONews(company string, limit, days int, now time.Time) *Request {
	return &Request{
		Query: strings.TrimSpace(company) + " IPO",
		Topic: TopicNews,
		Limit: limit,
		Since: now.AddDate(0, 0, -days),
		Until: now,
	}
}

// Response holds the provider-neutral results.
type Response struct {
	Results []Result
}

// Result is one search hit. RawContent is the page body when the provider
// returned it.
type Result struct {
	Title         string
	URL           string
	Content       string
	RawContent    string
	Score         float64
	PublishedDate string
}

// Body is the fullest text available for the hit.
func (r Result) Body() string {
	if r.RawContent != "" {
		return r.RawContent
	}
	return r.Content
}

// Unique drops hits without a URL and repeats of an earlier URL.
func Unique(results []Result) []Result {
	seen := make(map[string]bool, len(results))
	out := results[:0:0]
	for _, r := range results {
		if r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		out = append(out, r)
	}
	return out
}
