package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/search"
)

type staticFetcher struct {
	articles []model.Article
	err      error
	calls    int
}

func (s *staticFetcher) Fetch(ctx context.Context, query string, max int) ([]model.Article, error) {
	s.calls++
	return s.articles, s.err
}

func TestChain_FirstNonEmptyWins(t *testing.T) {
	failing := &staticFetcher{err: errors.New("boom")}
	empty := &staticFetcher{}
	good := &staticFetcher{articles: []model.Article{{Title: "a"}, {Title: "b"}, {Title: "c"}}}
	never := &staticFetcher{articles: []model.Article{{Title: "z"}}}

	c := NewChain(
		Source{Name: "failing", Fetcher: failing},
		Source{Name: "nil"},
		Source{Name: "empty", Fetcher: empty},
		Source{Name: "good", Fetcher: good},
		Source{Name: "never", Fetcher: never},
	)
	assert.Equal(t, []string{"failing", "empty", "good", "never"}, c.Sources())

	got, err := c.Fetch(context.Background(), "Acme", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 0, never.calls)
}

func TestChain_NothingFound(t *testing.T) {
	got, err := NewChain(Source{Name: "empty", Fetcher: &staticFetcher{}}).Fetch(context.Background(), "Acme", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewsAPI_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, `"Acme" IPO OR stock sentiment`, r.URL.Query().Get("q"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "relevancy", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "30", r.URL.Query().Get("pageSize"))
		_, _ = fmt.Fprint(w, `{"status":"ok","articles":[
			{"source":{"name":"Wire"},"title":"Acme IPO","description":"desc","url":"https://example.com/1","content":"Acme raised","publishedAt":"2024-01-01"}
		]}`)
	}))
	defer srv.Close()

	got, err := NewNewsAPI("key", srv.URL, time.Second).Fetch(context.Background(), "Acme", 30)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Wire", got[0].Source)
	assert.Equal(t, "Acme raised", got[0].Text())
}

func TestNewsAPI_FetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "code": "apiKeyInvalid", "message": "bad key"})
	}))
	defer srv.Close()

	_, err := NewNewsAPI("key", srv.URL, time.Second).Fetch(context.Background(), "Acme", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
}

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Google News</title>
<item><title>Acme IPO soars on debut</title><link>https://example.com/acme</link>
<description>&lt;a href="https://example.com/acme"&gt;Acme IPO soars&lt;/a&gt;</description><pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate></item>
<item><title>Unrelated market wrap</title><link>https://example.com/wrap</link><description>Stocks closed flat</description></item>
<item><title>No link here</title><description>acme</description></item>
</channel></rss>`

func TestGoogleNews_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Acme IPO stock market sentiment", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = fmt.Fprint(w, rssFeed)
	}))
	defer srv.Close()

	got, err := NewGoogleNews(srv.URL, time.Second).Fetch(context.Background(), "Acme", 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/acme", got[0].URL)
	assert.Equal(t, "Acme IPO soars", got[0].Description)
}

type fakeSearcher struct{ req *search.Request }

func (f *fakeSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	f.req = req
	return &search.Response{Results: []search.Result{
		{Title: "t", URL: "https://example.com", Content: "snippet", RawContent: "full body"},
	}}, nil
}

func TestSearchFetcher(t *testing.T) {
	assert.Nil(t, NewSearchFetcher(nil, 7))

	fs := &fakeSearcher{}
	f := NewSearchFetcher(fs, 7)
	f.now = func() time.Time { return time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC) }

	got, err := f.Fetch(context.Background(), "Acme", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "full body", got[0].Content)
	assert.Equal(t, "snippet", got[0].Description)
	assert.Equal(t, "2024-03-03", fs.req.Since.Format(time.DateOnly))
	assert.Equal(t, search.TopicNews, fs.req.Topic)
	assert.Equal(t, "Acme IPO", fs.req.Query)
	assert.True(t, fs.req.FullContent)
}

func TestFullText(t *testing.T) {
	long := strings.Repeat("x", shortContentLen)
	next := &staticFetcher{articles: []model.Article{
		{URL: "https://example.com/short", Content: "short"},
		{URL: "https://example.com/long", Content: long},
		{Content: "no url"},
		{URL: "https://example.com/broken", Content: "tiny"},
	}}

	var reads int32
	f := WithFullText(next, 2, time.Second)
	f.read = func(pageURL string, timeout time.Duration) (string, error) {
		atomic.AddInt32(&reads, 1)
		if strings.HasSuffix(pageURL, "broken") {
			return "", errors.New("404")
		}
		return strings.Repeat("body ", 2000), nil
	}

	got, err := f.Fetch(context.Background(), "Acme", 10)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&reads))
	assert.Len(t, got[0].Content, maxContentLen)
	assert.Equal(t, long, got[1].Content)
	assert.Equal(t, "no url", got[2].Content)
	assert.Equal(t, "tiny", got[3].Content)
}
