package analyzer

import (
	"fmt"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/extract"
)

const maxPromptText = 3000

const promptTemplate = `Analyze the sentiment of the following news article regarding an IPO.
The company's name might be mentioned in the article.
Focus on the sentiment towards the IPO or the company in the context of its public offering.

Article Text:
---
%s
---

Based *only* on the text provided, classify the sentiment as "Positive", "Neutral", or "Negative".
Also, extract key positive highlights, key negative highlights, and general key buzzwords related to the IPO/company from the article.

Return your response ONLY as a JSON object with the following structure:
{
  "sentiment": "...",
  "positive_highlights": ["...", "..."],
  "negative_highlights": ["...", "..."],
  "key_buzzwords": ["...", "..."]
}
Ensure the highlights and buzzwords are concise phrases or terms.
If there are no specific positive or negative highlights, return an empty list for that field.
Do not include any explanations or text outside of this JSON structure.
`

// BuildPrompt renders the classification prompt for one article.
func BuildPrompt(articleText string) string {
	return fmt.Sprintf(promptTemplate, extract.Truncate(articleText, maxPromptText))
}
