package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/biz"
	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/conf"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/analyzer"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/news"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/report"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/search/factory"
)

// NewPipeline assembles the news sources, the LLM analyzer and the PDF
// generator from configuration. Components left unconfigured stay nil.
func NewPipeline(c *conf.Analysis, rc *conf.Report, logger log.Logger) (*biz.Pipeline, error) {
	helper := log.NewHelper(logger)
	if c == nil {
		c = &conf.Analysis{}
	}
	p := &biz.Pipeline{}

	fetcher, err := newsFetcher(c)
	if err != nil {
		return nil, err
	}
	p.News = fetcher

	if c.Llm != nil {
		m, err := analyzer.NewModel(context.Background(), analyzer.ModelConfig{
			Provider:    c.Llm.Provider,
			BaseURL:     c.Llm.BaseUrl,
			APIKey:      c.Llm.ApiKey,
			Model:       c.Llm.Model,
			Temperature: c.Llm.Temperature,
		})
		if err != nil {
			return nil, err
		}
		if m != nil {
			p.Analyzer = analyzer.New(m, analyzerOptions(c.Concurrency)...)
		}
	}
	if p.Analyzer == nil {
		helper.Warn("no LLM api key configured, analysis is unavailable")
	}

	if rc != nil && rc.Enabled {
		renderer, err := report.NewRenderer()
		if err != nil {
			return nil, err
		}
		printer := report.NewChromePrinter(rc.ChromeUrl, duration(rc.Timeout, 60*time.Second))
		p.Report = report.NewGenerator(renderer, printer)
	}
	return p, nil
}

func newsFetcher(c *conf.Analysis) (biz.NewsFetcher, error) {
	nc := c.News
	if nc == nil {
		nc = &conf.News{}
	}
	timeout := duration(nc.Timeout, 10*time.Second)

	var sources []news.Source
	if nc.NewsapiKey != "" {
		sources = append(sources, news.Source{Name: "NewsAPI", Fetcher: news.NewNewsAPI(nc.NewsapiKey, nc.NewsapiUrl, timeout)})
	}

	if sc := c.Search; sc != nil {
		fc := factory.Config{Provider: sc.Provider}
		if sc.Tavily != nil {
			fc.TavilyAPIKey = sc.Tavily.ApiKey
		}
		if sc.Searxng != nil {
			fc.SearXNGBaseURL = sc.Searxng.BaseUrl
			fc.SearXNGTimeout = int(sc.Searxng.Timeout)
		}
		searcher, err := factory.NewSearcher(fc)
		if err != nil {
			return nil, err
		}
		if searcher != nil {
			sources = append(sources, news.Source{Name: "Search", Fetcher: news.NewSearchFetcher(searcher, int(sc.LookbackDays))})
		}
	}

	sources = append(sources, news.Source{Name: "Google News", Fetcher: news.NewGoogleNews(nc.GoogleNewsUrl, timeout)})

	var f biz.NewsFetcher = news.NewChain(sources...)
	if ft := c.FullText; ft != nil && ft.Enabled {
		f = news.WithFullText(f, int(ft.Workers), duration(ft.Timeout, 15*time.Second))
	}
	return f, nil
}

func analyzerOptions(cc *conf.Concurrency) []analyzer.Option {
	if cc == nil {
		return nil
	}
	var opts []analyzer.Option
	if cc.Rpm > 0 {
		burst := int(cc.Qps)
		if burst < 1 {
			burst = 1
		}
		opts = append(opts, analyzer.WithLimiter(rate.NewLimiter(rate.Limit(float64(cc.Rpm)/60.0), burst)))
	}
	if cc.Workers > 0 {
		opts = append(opts, analyzer.WithWorkers(int(cc.Workers)))
	}
	return opts
}

func duration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
