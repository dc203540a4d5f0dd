package analyzer

import (
	"math"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

const (
	maxHighlights = 5
	maxSnippets   = 3
)

// Summary is the overall sentiment across a batch of results.
type Summary struct {
	Breakdown  model.Breakdown
	Score      float64
	Verdict    string
	Highlights model.Highlights
	Snippets   []model.Snippet
}

// Aggregate combines per-article results. Failed results are ignored.
func Aggregate(results []Result) Summary {
	empty := Summary{
		Highlights: model.Highlights{Positive: []string{}, Negative: []string{}},
		Snippets:   []model.Snippet{},
	}
	if len(results) == 0 {
		empty.Verdict = "N/A"
		return empty
	}

	valid := make([]*Result, 0, len(results))
	counts := map[string]int{}
	for i := range results {
		if results[i].Failed() {
			continue
		}
		valid = append(valid, &results[i])
		counts[results[i].Sentiment]++
	}
	if len(valid) == 0 {
		empty.Verdict = "Error in Analysis"
		return empty
	}

	total := float64(len(valid))
	pos := float64(counts[model.Positive]) / total * 100
	neu := float64(counts[model.Neutral]) / total * 100
	neg := float64(counts[model.Negative]) / total * 100
	score := round((pos*5+neu*3+neg*1)/100, 2)

	var allPos, allNeg []string
	for _, r := range valid {
		allPos = append(allPos, r.PositiveHighlights...)
		allNeg = append(allNeg, r.NegativeHighlights...)
	}

	return Summary{
		Breakdown: model.Breakdown{
			Positive: round(pos, 1),
			Neutral:  round(neu, 1),
			Negative: round(neg, 1),
		},
		Score:   score,
		Verdict: Verdict(score),
		Highlights: model.Highlights{
			Positive: firstUnique(allPos, maxHighlights),
			Negative: firstUnique(allNeg, maxHighlights),
		},
		Snippets: pickSnippets(valid),
	}
}

// Score computes the 1 to 5 market sentiment score of a breakdown.
func Score(b model.Breakdown) float64 {
	return round((b.Positive*5+b.Neutral*3+b.Negative*1)/100, 2)
}

// Verdict maps a market sentiment score to a subscription recommendation.
func Verdict(score float64) string {
	switch {
	case score >= 4.0:
		return "Strong Subscribe"
	case score >= 3.0:
		return "Cautious Subscribe"
	case score < 2.0:
		return "Avoid"
	default:
		return "Neutral"
	}
}

// pickSnippets takes one article per sentiment, Positive first, then fills
// up to maxSnippets with the remaining articles in order.
func pickSnippets(valid []*Result) []model.Snippet {
	snippets := make([]model.Snippet, 0, maxSnippets)
	used := make(map[*Result]bool)

	for _, s := range []string{model.Positive, model.Negative, model.Neutral} {
		for _, r := range valid {
			if r.Sentiment == s {
				snippets = append(snippets, snippetOf(r))
				used[r] = true
				break
			}
		}
	}

	for _, r := range valid {
		if len(snippets) >= maxSnippets {
			break
		}
		if used[r] {
			continue
		}
		snippets = append(snippets, snippetOf(r))
		used[r] = true
	}
	return snippets
}

func snippetOf(r *Result) model.Snippet {
	text := r.SourceTitle
	if text == "" {
		text = "N/A"
	}
	switch {
	case r.Sentiment == model.Positive && len(r.PositiveHighlights) > 0:
		text += ": " + r.PositiveHighlights[0]
	case r.Sentiment == model.Negative && len(r.NegativeHighlights) > 0:
		text += ": " + r.NegativeHighlights[0]
	}
	return model.Snippet{Text: text, Sentiment: r.Sentiment, Source: r.SourceURL}
}

func firstUnique(items []string, n int) []string {
	out := make([]string, 0, n)
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if len(out) == n {
			break
		}
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
