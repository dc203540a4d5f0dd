package biz

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/conf"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/analyzer"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

type fakeNews struct {
	articles []model.Article
	err      error
	max      int
}

func (f *fakeNews) Fetch(_ context.Context, _ string, max int) ([]model.Article, error) {
	f.max = max
	return f.articles, f.err
}

type fakeAnalyzer struct {
	inputs []analyzer.Input
	empty  bool
}

func (f *fakeAnalyzer) AnalyzeBatch(_ context.Context, inputs []analyzer.Input) []analyzer.Result {
	f.inputs = inputs
	if f.empty {
		return nil
	}
	out := make([]analyzer.Result, len(inputs))
	for i, in := range inputs {
		out[i] = analyzer.Result{
			Sentiment:          model.Positive,
			PositiveHighlights: []string{"demand"},
			SourceTitle:        in.Title,
			SourceURL:          in.SourceURL,
		}
	}
	return out
}

type memHistory struct {
	entries []*model.HistoryEntry
}

func (m *memHistory) Save(_ context.Context, e *model.HistoryEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memHistory) List(_ context.Context, _ string, limit int) ([]*model.HistoryEntry, error) {
	if len(m.entries) > limit {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

type memCache struct {
	items map[string]*model.AnalysisResult
}

func (m *memCache) Get(_ context.Context, name string) (*model.AnalysisResult, error) {
	return m.items[name], nil
}

func (m *memCache) Set(_ context.Context, name string, res *model.AnalysisResult) error {
	if m.items == nil {
		m.items = map[string]*model.AnalysisResult{}
	}
	m.items[name] = res
	return nil
}

func prodConf() *conf.Analysis {
	return &conf.Analysis{Mode: "production", News: &conf.News{NewsapiKey: "key"}}
}

func articles() []model.Article {
	return []model.Article{
		{Title: "Acme files for IPO", URL: "https://n/1", Content: "ACME Corp plans a listing"},
		{Title: "Other", URL: "https://n/2", Content: "unrelated market news"},
		{Title: "", URL: "", Description: "acme roadshow begins"},
		{Title: "Empty", URL: "https://n/4"},
	}
}

func TestAnalyze_Success(t *testing.T) {
	news := &fakeNews{articles: articles()}
	an := &fakeAnalyzer{}
	hist := &memHistory{}
	cache := &memCache{}
	uc := NewAnalysisUseCase(prodConf(), &Pipeline{News: news, Analyzer: an}, hist, cache, log.DefaultLogger)

	res, err := uc.Analyze(context.Background(), "  Acme ")
	require.NoError(t, err)

	assert.Equal(t, 30, news.max)
	require.Len(t, an.inputs, 2)
	assert.Equal(t, "N/A", an.inputs[1].Title)
	assert.Equal(t, "N/A", an.inputs[1].SourceURL)

	assert.Equal(t, "Acme", res.CompanyName)
	assert.Equal(t, realIPODate, res.IPODate)
	assert.Equal(t, 2, res.SourceArticleCount)
	assert.Equal(t, 5.0, res.MarketSentimentScore)
	assert.Equal(t, "Strong Subscribe", res.Verdict)

	require.Len(t, hist.entries, 1)
	assert.NotEmpty(t, hist.entries[0].RunID)
	assert.Same(t, res, cache.items["Acme"])

	// Second call is served from the cache.
	an.inputs = nil
	again, err := uc.Analyze(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Same(t, res, again)
	assert.Nil(t, an.inputs)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name string
		conf *conf.Analysis
		pipe *Pipeline
		want *errors.Error
	}{
		{
			name: "missing news key",
			conf: &conf.Analysis{Mode: "production"},
			pipe: &Pipeline{News: &fakeNews{articles: articles()}, Analyzer: &fakeAnalyzer{}},
			want: ErrNewsKeyMissing,
		},
		{
			name: "no articles",
			conf: prodConf(),
			pipe: &Pipeline{News: &fakeNews{}, Analyzer: &fakeAnalyzer{}},
			want: ErrNoArticles,
		},
		{
			name: "nothing relevant",
			conf: prodConf(),
			pipe: &Pipeline{News: &fakeNews{articles: articles()[1:2]}, Analyzer: &fakeAnalyzer{}},
			want: ErrNoRelevant,
		},
		{
			name: "no analyzer",
			conf: prodConf(),
			pipe: &Pipeline{News: &fakeNews{articles: articles()}},
			want: ErrAnalyzerMissing,
		},
		{
			name: "empty analysis",
			conf: prodConf(),
			pipe: &Pipeline{News: &fakeNews{articles: articles()}, Analyzer: &fakeAnalyzer{empty: true}},
			want: ErrAnalysisEmpty,
		},
		{
			name: "unexpected failure",
			conf: prodConf(),
			pipe: &Pipeline{News: &fakeNews{err: stderrors.New("boom")}, Analyzer: &fakeAnalyzer{}},
			want: ErrInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewAnalysisUseCase(tt.conf, tt.pipe, nil, nil, log.DefaultLogger)
			_, err := uc.Analyze(context.Background(), "Acme")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestAnalyze_NameRequired(t *testing.T) {
	uc := NewAnalysisUseCase(&conf.Analysis{Mode: "development"}, &Pipeline{}, nil, nil, log.DefaultLogger)
	_, err := uc.Analyze(context.Background(), "   ")
	assert.True(t, errors.Is(err, ErrNameRequired))
	assert.Equal(t, 400, errors.Code(err))
}

func TestAnalyze_MockFallback(t *testing.T) {
	hist := &memHistory{}
	uc := NewAnalysisUseCase(&conf.Analysis{Mode: "Testing"}, &Pipeline{News: &fakeNews{}}, hist, nil, log.DefaultLogger)

	res, err := uc.Analyze(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, mockIPODate, res.IPODate)
	assert.Equal(t, 3.2, res.MarketSentimentScore)
	assert.Equal(t, "Cautious Subscribe", res.Verdict)
	assert.Equal(t, "NewsSiteA", res.TopSnippets[0].Source)
	assert.Empty(t, hist.entries)
}

func TestReport(t *testing.T) {
	uc := NewAnalysisUseCase(&conf.Analysis{Mode: "development"}, &Pipeline{}, nil, nil, log.DefaultLogger)
	_, _, err := uc.Report(context.Background(), "Acme")
	assert.True(t, errors.Is(err, ErrPDFUnavailable))
	assert.Equal(t, 501, errors.Code(err))

	uc = NewAnalysisUseCase(&conf.Analysis{Mode: "development"}, &Pipeline{Report: pdfFunc(func(*model.AnalysisResult) ([]byte, error) {
		return nil, stderrors.New("chrome gone")
	})}, nil, nil, log.DefaultLogger)
	_, _, err = uc.Report(context.Background(), "Acme")
	assert.True(t, errors.Is(err, ErrPDFFailed))

	uc = NewAnalysisUseCase(&conf.Analysis{Mode: "development"}, &Pipeline{Report: pdfFunc(func(res *model.AnalysisResult) ([]byte, error) {
		return []byte("pdf:" + res.CompanyName), nil
	})}, nil, nil, log.DefaultLogger)
	res, pdf, err := uc.Report(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", res.CompanyName)
	assert.Equal(t, "pdf:Acme", string(pdf))
}

func TestReport_UnexpectedAnalysisErrorIsPDFFailure(t *testing.T) {
	pipe := &Pipeline{
		News: &fakeNews{err: stderrors.New("connection reset")},
		Report: pdfFunc(func(*model.AnalysisResult) ([]byte, error) {
			t.Fatal("report rendered after a failed analysis")
			return nil, nil
		}),
	}
	uc := NewAnalysisUseCase(prodConf(), pipe, nil, nil, log.DefaultLogger)

	_, _, err := uc.Report(context.Background(), "Acme")
	assert.True(t, errors.Is(err, ErrPDFFailed))
	assert.Equal(t, "An error occurred while generating the PDF report.", errors.FromError(err).Message)

	// Known failures keep their own status on the PDF route.
	pipe.News = &fakeNews{}
	_, _, err = uc.Report(context.Background(), "Acme")
	assert.True(t, errors.Is(err, ErrNoArticles))

	// The JSON route keeps the generic processing message.
	pipe.News = &fakeNews{err: stderrors.New("connection reset")}
	_, err = uc.Analyze(context.Background(), "Acme")
	assert.True(t, errors.Is(err, ErrInternal))
}

type pdfFunc func(*model.AnalysisResult) ([]byte, error)

func (f pdfFunc) PDF(_ context.Context, res *model.AnalysisResult) ([]byte, error) { return f(res) }

func TestHistory_Limits(t *testing.T) {
	hist := &memHistory{}
	for i := 0; i < 60; i++ {
		hist.entries = append(hist.entries, &model.HistoryEntry{ID: int64(i)})
	}
	uc := NewAnalysisUseCase(prodConf(), &Pipeline{}, hist, nil, log.DefaultLogger)

	got, err := uc.History(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, got, 10)

	got, err = uc.History(context.Background(), "", 500)
	require.NoError(t, err)
	assert.Len(t, got, 50)

	uc = NewAnalysisUseCase(prodConf(), &Pipeline{}, nil, nil, log.DefaultLogger)
	got, err = uc.History(context.Background(), "", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
