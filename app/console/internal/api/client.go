// Package api is a client for the sentiment service HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
var ErrMalformedResponse = errors.New("malformed response body")

// HTTPError is a response the service rejected.
type HTTPError struct {
	Status     int
	StatusText string
	// Message is the body's "error" field, empty when there was none.
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Error: %d %s", e.Status, e.StatusText)
}

// Breakdown is the sentiment percentage distribution.
type Breakdown struct {
	Positive *float64 `json:"Positive" yaml:"positive"`
	Neutral  *float64 `json:"Neutral" yaml:"neutral"`
	Negative *float64 `json:"Negative" yaml:"negative"`
}

// Highlights lists key points per polarity.
type Highlights struct {
	Positive []string `json:"positive" yaml:"positive"`
	Negative []string `json:"negative" yaml:"negative"`
}

// Snippet is one representative excerpt.
type Snippet struct {
	Text      *string `json:"text" yaml:"text"`
	Sentiment *string `json:"sentiment" yaml:"sentiment"`
	Source    *string `json:"source" yaml:"source"`
}

// Result is an analysis as returned by the service. Pointer fields are nil
// when the service left them out.
type Result struct {
	CompanyName          *string     `json:"company_name" yaml:"company_name"`
	IPODate              *string     `json:"ipo_date" yaml:"ipo_date"`
	MarketSentimentScore *float64    `json:"market_sentiment_score" yaml:"market_sentiment_score"`
	Verdict              *string     `json:"verdict" yaml:"verdict"`
	Highlights           *Highlights `json:"highlights" yaml:"highlights"`
	TopSnippets          []Snippet   `json:"top_snippets" yaml:"top_snippets"`
	SentimentBreakdown   *Breakdown  `json:"sentiment_breakdown" yaml:"sentiment_breakdown"`
	SourceArticleCount   *int        `json:"source_article_count" yaml:"source_article_count"`
}

// Client talks to the sentiment service.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SentimentURL is the analysis endpoint for name.
func (c *Client) SentimentURL(name string) string {
	return c.baseURL + "/api/sentiment?ipo_name=" + url.QueryEscape(name)
}

// ExportURL is the PDF report endpoint for name.
func (c *Client) ExportURL(name string) string {
	return c.baseURL + "/api/sentiment/pdf?ipo_name=" + url.QueryEscape(name)
}

type errorBody struct {
	Error *string `json:"error"`
}

// Fetch requests the analysis of name. Transport failures are returned as
// is; rejected requests as *HTTPError; undecodable 2xx bodies wrap
// ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context, name string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SentimentURL(name), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var eb errorBody
	decodeErr := json.Unmarshal(body, &eb)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		he := &HTTPError{Status: resp.StatusCode, StatusText: statusText(resp)}
		if decodeErr == nil && eb.Error != nil {
			he.Message = *eb.Error
		}
		return nil, he
	}

	if decodeErr == nil && eb.Error != nil {
		return nil, &HTTPError{Status: resp.StatusCode, StatusText: statusText(resp), Message: *eb.Error}
	}

	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &res, nil
}

// DownloadPDF fetches the PDF report for name.
func (c *Client) DownloadPDF(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ExportURL(name), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		he := &HTTPError{Status: resp.StatusCode, StatusText: statusText(resp)}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != nil {
			he.Message = *eb.Error
		}
		return nil, he
	}
	return body, nil
}

// statusText is the reason phrase of the status line.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
