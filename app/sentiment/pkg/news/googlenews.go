package news

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/extract"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

const (
	defaultGoogleNewsURL = "https://news.google.com/rss/search"
	googleNewsMax        = 20
)

// GoogleNews reads the Google News RSS search feed. It needs no API key and
// is the last resort of the default chain.
type GoogleNews struct {
	endpoint string
	parser   *gofeed.Parser
	timeout  time.Duration
}

// NewGoogleNews creates a GoogleNews fetcher. An empty endpoint uses news.google.com.
func NewGoogleNews(endpoint string, timeout time.Duration) *GoogleNews {
	if endpoint == "" {
		endpoint = defaultGoogleNewsURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	parser := gofeed.NewParser()
	parser.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	return &GoogleNews{endpoint: endpoint, parser: parser, timeout: timeout}
}

// Fetch implements Fetcher. Items are kept only when a query term appears in
// the title or description.
func (g *GoogleNews) Fetch(ctx context.Context, query string, max int) ([]model.Article, error) {
	if max <= 0 || max > googleNewsMax {
		max = googleNewsMax
	}

	u, err := url.Parse(g.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query+" IPO stock market sentiment")
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	feed, err := g.parser.ParseURLWithContext(u.String(), ctx)
	if err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(query))
	var articles []model.Article
	for _, item := range feed.Items {
		if len(articles) >= max {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		description := extract.Text(item.Description)
		if !mentionsAny(item.Title, terms) && !mentionsAny(description, terms) {
			continue
		}
		articles = append(articles, model.Article{
			Title:       item.Title,
			URL:         item.Link,
			Source:      "Google News",
			Description: description,
			Content:     description,
			PublishedAt: item.Published,
		})
	}
	return articles, nil
}

func mentionsAny(text string, terms []string) bool {
	text = strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
