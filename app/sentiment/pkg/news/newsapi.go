package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

const defaultNewsAPIEndpoint = "https://newsapi.org/v2/everything"

// NewsAPI queries the newsapi.org "everything" endpoint.
type NewsAPI struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewNewsAPI creates a NewsAPI client. An empty endpoint uses the public API.
func NewNewsAPI(apiKey, endpoint string, timeout time.Duration) *NewsAPI {
	if endpoint == "" {
		endpoint = defaultNewsAPIEndpoint
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &NewsAPI{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
}

// Fetch implements Fetcher.
func (n *NewsAPI) Fetch(ctx context.Context, query string, max int) ([]model.Article, error) {
	pageSize := max
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}

	u, err := url.Parse(n.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid newsapi endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", `"`+query+`" IPO OR stock sentiment`)
	q.Set("language", "en")
	q.Set("sortBy", "relevancy")
	q.Set("pageSize", fmt.Sprint(pageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("X-Api-Key", n.apiKey)

	res, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	var resp newsAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("newsapi error (status %d): %s", res.StatusCode, string(body))
	}
	if res.StatusCode != http.StatusOK || resp.Status == "error" {
		return nil, fmt.Errorf("newsapi error (status %d): %s %s", res.StatusCode, resp.Code, resp.Message)
	}

	articles := make([]model.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, model.Article{
			Title:       a.Title,
			URL:         a.URL,
			Source:      a.Source.Name,
			Description: a.Description,
			Content:     a.Content,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
