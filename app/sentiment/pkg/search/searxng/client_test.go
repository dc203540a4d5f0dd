package searxng

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/search"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Acme IPO", q.Get("q"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "news", q.Get("categories"))
		assert.Equal(t, "month", q.Get("time_range"))
		assert.Equal(t, "en", q.Get("language"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"title":"Acme prices IPO","url":"https://example.com/a","content":"priced","publishedDate":"2024-03-08T10:00:00"},
			{"title":"dup","url":"https://example.com/a","content":"again"},
			{"title":"old","url":"https://example.com/old","content":"stale","publishedDate":"2023-01-01T00:00:00Z"},
			{"title":"no date","url":"https://example.com/b","content":"undated"},
			{"title":"extra","url":"https://example.com/c","content":"over limit"}
		]}`))
	}))
	defer srv.Close()

	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	resp, err := NewClient(srv.URL, 5).Search(context.Background(), search.IPONews("Acme", 2, 30, now))
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "https://example.com/a", resp.Results[0].URL)
	assert.Equal(t, "https://example.com/b", resp.Results[1].URL)
}

func TestClient_SearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 1).Search(context.Background(), &search.Request{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestTimeRange(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "", timeRange(time.Time{}, now))
	assert.Equal(t, "day", timeRange(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "week", timeRange(now.AddDate(0, 0, -7), now))
	assert.Equal(t, "month", timeRange(now.AddDate(0, 0, -30), now))
	assert.Equal(t, "year", timeRange(now.AddDate(0, 0, -90), now))
}
