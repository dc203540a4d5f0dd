// Package analyzer classifies IPO news articles with an LLM and aggregates
// the per-article verdicts into an overall market sentiment.
package analyzer

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/logger"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

// Model is a text-in, text-out LLM backend.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Input is one article to classify.
type Input struct {
	Text      string
	Title     string
	SourceURL string
}

// Result is the classification of one article. Results with Err set are
// excluded from aggregation.
type Result struct {
	Sentiment          string   `json:"sentiment"`
	PositiveHighlights []string `json:"positive_highlights"`
	NegativeHighlights []string `json:"negative_highlights"`
	KeyBuzzwords       []string `json:"key_buzzwords"`
	SourceTitle        string   `json:"source_title"`
	SourceURL          string   `json:"source_url"`
	ParseError         bool     `json:"error_parsing,omitempty"`
	RawResponse        string   `json:"raw_response,omitempty"`
	Err                string   `json:"error,omitempty"`
}

// Failed reports whether the article could not be analysed.
func (r Result) Failed() bool { return r.Err != "" }

// Analyzer runs a Model over a batch of articles.
type Analyzer struct {
	model      Model
	limiter    *rate.Limiter
	workers    int
	maxRetries int
	baseDelay  time.Duration
}

// Option customises an Analyzer.
type Option func(*Analyzer)

// WithLimiter shares a rate limiter across all model calls.
func WithLimiter(l *rate.Limiter) Option {
	return func(a *Analyzer) { a.limiter = l }
}

// WithWorkers bounds the number of concurrent model calls.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithRetry sets the retry budget for rate-limited calls.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(a *Analyzer) {
		a.maxRetries = maxRetries
		a.baseDelay = baseDelay
	}
}

// New creates an Analyzer.
func New(m Model, opts ...Option) *Analyzer {
	a := &Analyzer{
		model:      m,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		workers:    4,
		maxRetries: 3,
		baseDelay:  2 * time.Second,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// AnalyzeBatch classifies every input and returns results in input order.
// Per-article failures are recorded in the result rather than returned.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []Input) []Result {
	if len(inputs) == 0 {
		return nil
	}

	results := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, in := range inputs {
		g.Go(func() error {
			results[i] = a.analyzeOne(gctx, in)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (a *Analyzer) analyzeOne(ctx context.Context, in Input) Result {
	if strings.TrimSpace(in.Text) == "" {
		return Result{
			Sentiment:   model.Neutral,
			SourceTitle: in.Title,
			SourceURL:   in.SourceURL,
			Err:         "Empty article text",
		}
	}

	prompt := BuildPrompt(in.Text)
	var lastErr error
	for i := 0; i <= a.maxRetries; i++ {
		if err := a.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}

		text, err := a.model.Generate(ctx, prompt)
		if err == nil {
			return ParseResponse(text, in.Title, in.SourceURL)
		}
		lastErr = err
		if !isRateLimited(err) || i == a.maxRetries {
			break
		}

		delay := a.baseDelay * time.Duration(1<<i)
		logger.Log.Warnf("model rate limited for %q, retrying in %s", in.Title, delay)
		select {
		case <-ctx.Done():
			lastErr = ctx.Err()
			i = a.maxRetries
		case <-time.After(delay):
		}
	}

	logger.Log.Errorf("analysis failed for article %q: %v", in.Title, lastErr)
	return Result{
		Sentiment:   model.Neutral,
		SourceTitle: in.Title,
		SourceURL:   in.SourceURL,
		Err:         lastErr.Error(),
	}
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "resource_exhausted")
}
