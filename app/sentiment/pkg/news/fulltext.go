package news

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/extract"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/logger"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

const (
	shortContentLen = 500
	maxContentLen   = 5000
)

// PageReader downloads the main text of an article page.
type PageReader func(pageURL string, timeout time.Duration) (string, error)

// FullText replaces short provider snippets with the article body.
type FullText struct {
	next    Fetcher
	read    PageReader
	workers int
	timeout time.Duration
}

// WithFullText wraps next so that articles shorter than 500 bytes are
// re-fetched through readability. workers bounds concurrent page loads.
func WithFullText(next Fetcher, workers int, timeout time.Duration) *FullText {
	if workers <= 0 {
		workers = 4
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &FullText{next: next, read: extract.FromURL, workers: workers, timeout: timeout}
}

// Fetch implements Fetcher.
func (f *FullText) Fetch(ctx context.Context, query string, max int) ([]model.Article, error) {
	articles, err := f.next.Fetch(ctx, query, max)
	if err != nil || len(articles) == 0 {
		return articles, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i := range articles {
		a := &articles[i]
		if len(a.Text()) >= shortContentLen || a.URL == "" {
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			body, err := f.read(a.URL, f.timeout)
			if err != nil {
				logger.Log.Debugf("full text fetch failed [%s]: %v", a.URL, err)
				return nil
			}
			if len(body) > len(a.Text()) {
				a.Content = extract.Truncate(body, maxContentLen)
			}
			return nil
		})
	}
	_ = g.Wait()
	return articles, nil
}
