package biz

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/conf"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/analyzer"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

const (
	defaultMaxArticles = 30
	realIPODate        = "N/A - (To be sourced or manually input)"
	mockIPODate        = "N/A (mock data)"
)

// NewsFetcher gathers articles for a company.
type NewsFetcher interface {
	Fetch(ctx context.Context, query string, max int) ([]model.Article, error)
}

// SentimentAnalyzer classifies articles.
type SentimentAnalyzer interface {
	AnalyzeBatch(ctx context.Context, inputs []analyzer.Input) []analyzer.Result
}

// ReportGenerator produces PDF reports.
type ReportGenerator interface {
	PDF(ctx context.Context, res *model.AnalysisResult) ([]byte, error)
}

// HistoryRepo stores finished analyses.
type HistoryRepo interface {
	Save(ctx context.Context, e *model.HistoryEntry) error
	List(ctx context.Context, companyName string, limit int) ([]*model.HistoryEntry, error)
}

// ResultCache caches analyses by company name. Get returns nil on a miss.
type ResultCache interface {
	Get(ctx context.Context, companyName string) (*model.AnalysisResult, error)
	Set(ctx context.Context, companyName string, res *model.AnalysisResult) error
}

// Pipeline bundles the optional analysis components. Nil members are
// treated as not configured.
type Pipeline struct {
	News     NewsFetcher
	Analyzer SentimentAnalyzer
	Report   ReportGenerator
}

// AnalysisUseCase runs the IPO sentiment analysis.
type AnalysisUseCase struct {
	pipe        *Pipeline
	history     HistoryRepo
	cache       ResultCache
	mock        bool
	newsKey     bool
	maxArticles int
	now         func() time.Time
	log         *log.Helper
}

// NewAnalysisUseCase creates an AnalysisUseCase.
func NewAnalysisUseCase(c *conf.Analysis, pipe *Pipeline, history HistoryRepo, cache ResultCache, logger log.Logger) *AnalysisUseCase {
	uc := &AnalysisUseCase{
		pipe:        pipe,
		history:     history,
		cache:       cache,
		maxArticles: defaultMaxArticles,
		now:         time.Now,
		log:         log.NewHelper(logger),
	}
	if c != nil {
		mode := strings.ToLower(c.Mode)
		uc.mock = mode == "development" || mode == "testing"
		uc.newsKey = c.News != nil && c.News.NewsapiKey != ""
		if c.MaxArticles > 0 {
			uc.maxArticles = int(c.MaxArticles)
		}
	}
	return uc
}

// Analyze returns the sentiment analysis for companyName. Outside
// production any failure after validation yields mock data instead.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, companyName string) (*model.AnalysisResult, error) {
	return uc.resolve(ctx, companyName, ErrInternal)
}

// resolve runs Analyze; unexpected errors are replaced by fallback.
func (uc *AnalysisUseCase) resolve(ctx context.Context, companyName string, fallback *errors.Error) (*model.AnalysisResult, error) {
	name := strings.TrimSpace(companyName)
	if name == "" {
		return nil, ErrNameRequired
	}

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, name)
		if err != nil {
			uc.log.WithContext(ctx).Warnf("cache lookup for %q failed: %v", name, err)
		} else if cached != nil {
			uc.log.WithContext(ctx).Infof("serving cached analysis for %q", name)
			return cached, nil
		}
	}

	res, err := uc.analyze(ctx, name)
	if err != nil {
		if uc.mock {
			uc.log.WithContext(ctx).Warnf("analysis for %q failed (%v), returning mock data", name, err)
			return MockResult(name), nil
		}
		var se *errors.Error
		if !errors.As(err, &se) {
			uc.log.WithContext(ctx).Errorf("critical error analysing %q: %v", name, err)
			return nil, fallback
		}
		return nil, err
	}

	uc.store(ctx, res)
	return res, nil
}

func (uc *AnalysisUseCase) analyze(ctx context.Context, name string) (*model.AnalysisResult, error) {
	if !uc.newsKey && !uc.mock {
		return nil, ErrNewsKeyMissing
	}
	if uc.pipe == nil || uc.pipe.News == nil {
		return nil, ErrNoArticles
	}

	articles, err := uc.pipe.News.Fetch(ctx, name, uc.maxArticles)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}

	inputs := RelevantInputs(name, articles)
	if len(inputs) == 0 {
		return nil, ErrNoRelevant
	}

	if uc.pipe.Analyzer == nil {
		uc.log.WithContext(ctx).Error("LLM api key not configured on the server for analysis")
		return nil, ErrAnalyzerMissing
	}

	uc.log.WithContext(ctx).Infof("sending %d articles for analysis of %q", len(inputs), name)
	results := uc.pipe.Analyzer.AnalyzeBatch(ctx, inputs)
	if len(results) == 0 {
		uc.log.WithContext(ctx).Warnf("analysis returned no results for %q", name)
		return nil, ErrAnalysisEmpty
	}

	sum := analyzer.Aggregate(results)
	return &model.AnalysisResult{
		CompanyName:          name,
		IPODate:              realIPODate,
		SentimentBreakdown:   sum.Breakdown,
		MarketSentimentScore: sum.Score,
		Verdict:              sum.Verdict,
		Highlights:           sum.Highlights,
		TopSnippets:          sum.Snippets,
		SourceArticleCount:   len(inputs),
	}, nil
}

func (uc *AnalysisUseCase) store(ctx context.Context, res *model.AnalysisResult) {
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, res.CompanyName, res); err != nil {
			uc.log.WithContext(ctx).Warnf("cache store for %q failed: %v", res.CompanyName, err)
		}
	}
	if uc.history != nil {
		entry := &model.HistoryEntry{
			RunID:                uuid.NewString(),
			CompanyName:          res.CompanyName,
			Verdict:              res.Verdict,
			MarketSentimentScore: res.MarketSentimentScore,
			SourceArticleCount:   res.SourceArticleCount,
			CreatedAt:            uc.now().UTC(),
		}
		if err := uc.history.Save(ctx, entry); err != nil {
			uc.log.WithContext(ctx).Warnf("history store for %q failed: %v", res.CompanyName, err)
		}
	}
}

// Report renders the analysis of companyName as a PDF.
func (uc *AnalysisUseCase) Report(ctx context.Context, companyName string) (*model.AnalysisResult, []byte, error) {
	if uc.pipe == nil || uc.pipe.Report == nil {
		return nil, nil, ErrPDFUnavailable
	}
	res, err := uc.resolve(ctx, companyName, ErrPDFFailed)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := uc.pipe.Report.PDF(ctx, res)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("error generating pdf for %q: %v", res.CompanyName, err)
		return nil, nil, ErrPDFFailed
	}
	return res, pdf, nil
}

// History lists recent analyses, newest first.
func (uc *AnalysisUseCase) History(ctx context.Context, companyName string, limit int) ([]*model.HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	if uc.history == nil {
		return []*model.HistoryEntry{}, nil
	}
	return uc.history.List(ctx, strings.TrimSpace(companyName), limit)
}

// RelevantInputs keeps the articles whose text mentions name, ignoring case.
func RelevantInputs(name string, articles []model.Article) []analyzer.Input {
	needle := strings.ToLower(name)
	var inputs []analyzer.Input
	for _, a := range articles {
		text := a.Text()
		if text == "" || !strings.Contains(strings.ToLower(text), needle) {
			continue
		}
		title, link := a.Title, a.URL
		if title == "" {
			title = "N/A"
		}
		if link == "" {
			link = "N/A"
		}
		inputs = append(inputs, analyzer.Input{Text: text, Title: title, SourceURL: link})
	}
	return inputs
}

// MockResult is the canned analysis served outside production.
func MockResult(name string) *model.AnalysisResult {
	b := model.Breakdown{Positive: 40, Neutral: 30, Negative: 30}
	score := analyzer.Score(b)
	return &model.AnalysisResult{
		CompanyName:          name,
		IPODate:              mockIPODate,
		SentimentBreakdown:   b,
		MarketSentimentScore: score,
		Verdict:              analyzer.Verdict(score),
		Highlights: model.Highlights{
			Positive: []string{"Strong pre-booking.", "Innovative product line."},
			Negative: []string{"High valuation concerns.", "Intense market competition."},
		},
		TopSnippets: []model.Snippet{
			{Text: "Investor enthusiasm is high for XYZ's upcoming IPO.", Sentiment: model.Positive, Source: "NewsSiteA"},
			{Text: "Analysts advise caution due to current market volatility affecting IPOs.", Sentiment: model.Neutral, Source: "ReportBC"},
			{Text: "Concerns about XYZ's debt load are surfacing pre-IPO.", Sentiment: model.Negative, Source: "ForumPostX"},
		},
	}
}
