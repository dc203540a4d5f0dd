package analyzer

import (
	"encoding/json"
	"strings"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/extract"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/logger"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

type modelReply struct {
	Sentiment          string   `json:"sentiment"`
	PositiveHighlights []string `json:"positive_highlights"`
	NegativeHighlights []string `json:"negative_highlights"`
	KeyBuzzwords       []string `json:"key_buzzwords"`
}

// ParseResponse decodes a model reply. The JSON may be wrapped in a fenced
// code block. When it cannot be decoded the sentiment is guessed from the
// words "positive" and "negative" in the raw text, the latter winning.
func ParseResponse(text, title, sourceURL string) Result {
	var reply modelReply
	if err := json.Unmarshal([]byte(jsonBlock(text)), &reply); err != nil {
		logger.Log.Warnf("could not decode model reply for %q: %v", title, err)

		lower := strings.ToLower(text)
		sentiment := model.Neutral
		if strings.Contains(lower, "positive") {
			sentiment = model.Positive
		}
		if strings.Contains(lower, "negative") {
			sentiment = model.Negative
		}
		return Result{
			Sentiment:          sentiment,
			PositiveHighlights: []string{},
			NegativeHighlights: []string{},
			KeyBuzzwords:       []string{},
			SourceTitle:        title,
			SourceURL:          sourceURL,
			ParseError:         true,
			RawResponse:        extract.Truncate(text, 200),
		}
	}

	return Result{
		Sentiment:          NormalizeSentiment(reply.Sentiment),
		PositiveHighlights: nonNil(reply.PositiveHighlights),
		NegativeHighlights: nonNil(reply.NegativeHighlights),
		KeyBuzzwords:       nonNil(reply.KeyBuzzwords),
		SourceTitle:        title,
		SourceURL:          sourceURL,
	}
}

// NormalizeSentiment capitalises s and maps anything unknown to Neutral.
func NormalizeSentiment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Neutral
	}
	s = strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	switch s {
	case model.Positive, model.Neutral, model.Negative:
		return s
	default:
		return model.Neutral
	}
}

func jsonBlock(text string) string {
	if _, after, ok := strings.Cut(text, "```json"); ok {
		block, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(block)
	}
	if _, after, ok := strings.Cut(text, "```"); ok {
		block, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(block)
	}
	return text
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
