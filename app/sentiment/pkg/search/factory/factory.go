package factory

import (
	"fmt"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/search"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/search/searxng"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/search/tavily"
)

// Config selects and configures a search provider.
type Config struct {
	Provider       string // "tavily", "searxng" or empty
	TavilyAPIKey   string
	SearXNGBaseURL string
	SearXNGTimeout int
}

// NewSearcher builds the configured provider. It returns (nil, nil) when no
// provider is configured, since search is an optional news source.
func NewSearcher(cfg Config) (search.Searcher, error) {
	provider := cfg.Provider
	if provider == "" {
		switch {
		case cfg.TavilyAPIKey != "":
			provider = "tavily"
		case cfg.SearXNGBaseURL != "":
			provider = "searxng"
		default:
			return nil, nil
		}
	}

	switch provider {
	case "tavily":
		if cfg.TavilyAPIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.TavilyAPIKey), nil

	case "searxng":
		if cfg.SearXNGBaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.SearXNGBaseURL, cfg.SearXNGTimeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
