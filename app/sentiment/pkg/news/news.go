// Package news gathers articles about an IPO from several providers.
package news

import (
	"context"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/logger"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

// Fetcher returns up to max articles for query.
type Fetcher interface {
	Fetch(ctx context.Context, query string, max int) ([]model.Article, error)
}

// Source is a named Fetcher inside a Chain.
type Source struct {
	Name    string
	Fetcher Fetcher
}

// Chain queries sources in order and returns the first non-empty batch.
// Provider errors are logged and the next source is tried.
type Chain struct {
	sources []Source
}

// NewChain builds a Chain; sources with a nil Fetcher are skipped.
func NewChain(sources ...Source) *Chain {
	c := &Chain{}
	for _, s := range sources {
		if s.Fetcher != nil {
			c.sources = append(c.sources, s)
		}
	}
	return c
}

// Sources reports the configured source names in order.
func (c *Chain) Sources() []string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, s.Name)
	}
	return names
}

// Fetch implements Fetcher.
func (c *Chain) Fetch(ctx context.Context, query string, max int) ([]model.Article, error) {
	for _, s := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		articles, err := s.Fetcher.Fetch(ctx, query, max)
		if err != nil {
			logger.Log.Warnf("news source %s failed for %q: %v", s.Name, query, err)
			continue
		}
		if len(articles) == 0 {
			logger.Log.Infof("news source %s returned no articles for %q", s.Name, query)
			continue
		}
		logger.Log.Infof("fetched %d articles from %s for %q", len(articles), s.Name, query)
		if max > 0 && len(articles) > max {
			articles = articles[:max]
		}
		return articles, nil
	}
	logger.Log.Warnf("no articles found for %q from any source", query)
	return nil, nil
}
