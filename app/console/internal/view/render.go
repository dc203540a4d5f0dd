package view

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/iWorld-y/ipo_radar/app/console/internal/api"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/chart"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

// Frame is the complete visible state of the view. Documents apply whole
// frames; no region is toggled on its own.
type Frame struct {
	Loading  bool
	Error    bool
	Results  bool
	Download bool

	ErrorMessage string
	// Content is set only when Results is.
	Content *Content
}

// Content is the rendered analysis.
type Content struct {
	CompanyName        string
	IPODate            string
	Score              string
	ArticleCount       string
	Badge              Badge
	PositiveHighlights []string
	NegativeHighlights []string
	Snippets           []SnippetItem
	Chart              ChartConfig
}

// Badge is the verdict label and its style classes.
type Badge struct {
	Text    string
	Classes []string
}

// SnippetItem is one rendered snippet. A placeholder item carries only Text.
type SnippetItem struct {
	Placeholder bool
	Indicator   string // "positive", "neutral" or "negative"
	Text        string
	Source      SourceLine
}

// SourceLine is either a link or plain text. NewContext asks for the link to
// open in a new browsing context.
type SourceLine struct {
	Label      string
	URL        string
	NewContext bool
}

// IsLink reports whether the line links to its source.
func (s SourceLine) IsLink() bool { return s.URL != "" }

// ChartSlice is one pie segment.
type ChartSlice struct {
	Label  string
	Value  float64
	Fill   string
	Border string
}

// ChartConfig describes the breakdown pie chart.
type ChartConfig struct {
	Slices []ChartSlice
}

// Tooltip is the hover label of slice i.
func (c ChartConfig) Tooltip(i int) string {
	s := c.Slices[i]
	return fmt.Sprintf("%s: %.1f%%", s.Label, s.Value)
}

// Render maps a state to its frame.
func Render(s State) Frame {
	switch s.Phase {
	case Loading:
		return Frame{Loading: true}
	case Failed:
		return Frame{Error: true, ErrorMessage: s.Message}
	case Succeeded:
		c := RenderContent(s.Result)
		return Frame{Results: true, Download: true, Content: &c}
	default:
		return Frame{}
	}
}

// RenderContent renders a result, substituting placeholders for anything
// missing.
func RenderContent(r *api.Result) Content {
	if r == nil {
		r = &api.Result{}
	}
	c := Content{
		CompanyName:  text(r.CompanyName),
		IPODate:      text(r.IPODate),
		Score:        NotAvailable,
		ArticleCount: NotAvailable,
		Badge:        RenderBadge(r.Verdict),
		Snippets:     RenderSnippets(r.TopSnippets),
		Chart:        RenderChart(r.SentimentBreakdown),
	}
	if r.MarketSentimentScore != nil {
		c.Score = fmt.Sprintf("%.2f", *r.MarketSentimentScore)
	}
	if r.SourceArticleCount != nil {
		c.ArticleCount = fmt.Sprintf("%d", *r.SourceArticleCount)
	}
	var pos, neg []string
	if r.Highlights != nil {
		pos, neg = r.Highlights.Positive, r.Highlights.Negative
	}
	c.PositiveHighlights = RenderHighlights(pos)
	c.NegativeHighlights = RenderHighlights(neg)
	return c
}

func text(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}

var whitespace = regexp.MustCompile(`\s+`)

// RenderBadge renders the verdict badge: the base "badge" class plus one
// style class derived from the verdict, or "na" when there is none.
func RenderBadge(verdict *string) Badge {
	if verdict == nil || *verdict == "" {
		return Badge{Text: NotAvailable, Classes: []string{"badge", "na"}}
	}
	return Badge{
		Text:    *verdict,
		Classes: []string{"badge", whitespace.ReplaceAllString(strings.ToLower(*verdict), "-")},
	}
}

// RenderHighlights returns items verbatim, or the single placeholder.
func RenderHighlights(items []string) []string {
	if len(items) == 0 {
		return []string{NoHighlights}
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// RenderSnippets renders snippets, or a single placeholder item.
func RenderSnippets(snippets []api.Snippet) []SnippetItem {
	if len(snippets) == 0 {
		return []SnippetItem{{Placeholder: true, Text: NoSnippets}}
	}
	out := make([]SnippetItem, len(snippets))
	for i, s := range snippets {
		out[i] = SnippetItem{
			Indicator: Indicator(s.Sentiment),
			Text:      text(s.Text),
			Source:    RenderSource(s.Source),
		}
	}
	return out
}

// Indicator classifies a sentiment label ignoring case; anything other than
// positive or negative is neutral.
func Indicator(sentiment *string) string {
	if sentiment == nil {
		return "neutral"
	}
	switch strings.ToLower(*sentiment) {
	case "positive":
		return "positive"
	case "negative":
		return "negative"
	default:
		return "neutral"
	}
}

// RenderSource links absolute source URLs by hostname. Missing, "#" and
// unparseable sources render as plain "Source: N/A".
func RenderSource(source *string) SourceLine {
	if source == nil || *source == "" || *source == "#" {
		return SourceLine{Label: SourceNotAvailable}
	}
	u, err := url.Parse(*source)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return SourceLine{Label: SourceNotAvailable}
	}
	return SourceLine{Label: "Source: " + u.Hostname(), URL: *source, NewContext: true}
}

// RenderChart builds the pie chart config. Missing categories are zero.
func RenderChart(b *api.Breakdown) ChartConfig {
	var vals [3]*float64
	if b != nil {
		vals = [3]*float64{b.Positive, b.Neutral, b.Negative}
	}
	labels := []string{model.Positive, model.Neutral, model.Negative}

	cfg := ChartConfig{Slices: make([]ChartSlice, len(labels))}
	for i, l := range labels {
		var v float64
		if vals[i] != nil {
			v = *vals[i]
		}
		colors := chart.Palette[l]
		cfg.Slices[i] = ChartSlice{
			Label:  l,
			Value:  v,
			Fill:   chart.CSS(colors.Fill, 0.7),
			Border: chart.CSS(colors.Border, 1),
		}
	}
	return cfg
}
