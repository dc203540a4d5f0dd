package tavily

import (
	"context"
	"encoding/json"
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
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Acme IPO", req.Query)
		assert.Equal(t, "news", req.Topic)
		assert.Equal(t, "basic", req.SearchDepth)
		assert.Equal(t, 3, req.MaxResults)
		assert.True(t, req.IncludeRawContent)
		assert.Equal(t, "2024-02-09", req.StartDate)
		assert.Equal(t, "2024-03-10", req.EndDate)

		_ = json.NewEncoder(w).Encode(SearchResponse{Results: []SearchResult{
			{Title: "Acme files", URL: "https://example.com/a", Content: "Acme IPO priced", Score: 0.9},
			{Title: "Acme files again", URL: "https://example.com/a"},
		}})
	}))
	defer srv.Close()

	c := NewClient("secret", WithEndpoint(srv.URL))
	req := search.IPONews("Acme", 3, 30, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	req.FullContent = true
	resp, err := c.Search(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "https://example.com/a", resp.Results[0].URL)
}

func TestClient_SearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient("k", WithEndpoint(srv.URL)).Search(context.Background(), &search.Request{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
