// Package searxng queries a self-hosted SearXNG instance.
package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/search"
)

const userAgent = "Mozilla/5.0 (compatible; ipo-radar/1.0; +https://github.com/iWorld-y/ipo_radar)"

// Client talks to the SearXNG JSON API.
type Client struct {
	baseURL  string
	language string
	client   *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithLanguage sets the result language; the default is "en".
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a client. timeout is in seconds; zero means 30s.
func NewClient(baseURL string, timeout int, opts ...Option) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	c := &Client{
		baseURL:  baseURL,
		language: "en",
		client:   &http.Client{Timeout: t},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ search.Searcher = (*Client)(nil)

type response struct {
	Results []hit `json:"results"`
}

type hit struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"publishedDate"`
	Score         float64 `json:"score"`
}

// timeRange maps a lookback window onto SearXNG's coarse time_range values.
func timeRange(since, now time.Time) string {
	if since.IsZero() {
		return ""
	}
	switch d := now.Sub(since); {
	case d <= 24*time.Hour:
		return "day"
	case d <= 7*24*time.Hour:
		return "week"
	case d <= 31*24*time.Hour:
		return "month"
	default:
		return "year"
	}
}

// publishedBefore reports whether a hit's date is known and earlier than since.
func publishedBefore(date string, since time.Time) bool {
	if date == "" || since.IsZero() {
		return false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Before(since)
		}
	}
	return false
}

// Search implements search.Searcher. Hits dated before req.Since are
// dropped since time_range only approximates the window.
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/search"

	now := req.Until
	if now.IsZero() {
		now = time.Now()
	}
	category := string(req.Topic)
	if category == "" {
		category = string(search.TopicGeneral)
	}
	q := u.Query()
	q.Set("q", req.Query)
	q.Set("format", "json")
	q.Set("categories", category)
	if c.language != "" {
		q.Set("language", c.language)
	}
	if tr := timeRange(req.Since, now); tr != "" {
		q.Set("time_range", tr)
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("searxng api error (status %d): %s", res.StatusCode, string(body))
	}

	var body response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	results := make([]search.Result, 0, len(body.Results))
	for _, h := range body.Results {
		if publishedBefore(h.PublishedDate, req.Since) {
			continue
		}
		results = append(results, search.Result{
			Title:         h.Title,
			URL:           h.URL,
			Content:       h.Content,
			Score:         h.Score,
			PublishedDate: h.PublishedDate,
		})
	}
	results = search.Unique(results)
	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}
	return &search.Response{Results: results}, nil
}
