package biz

import (
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewAnalysisUseCase)

var (
	ErrNameRequired    = errors.BadRequest("NAME_REQUIRED", "ipo_name parameter is required")
	ErrNewsKeyMissing  = errors.InternalServer("NEWS_KEY_MISSING", "NEWS_API_KEY not configured on the server.")
	ErrNoArticles      = errors.NotFound("NO_ARTICLES", "Could not fetch any articles for the IPO name.")
	ErrNoRelevant      = errors.NotFound("NO_RELEVANT_ARTICLES", "No relevant articles found after filtering.")
	ErrAnalyzerMissing = errors.InternalServer("ANALYZER_MISSING", "AI Analysis service is not configured.")
	ErrAnalysisEmpty   = errors.InternalServer("ANALYSIS_EMPTY", "AI analysis failed to produce results.")
	ErrInternal        = errors.InternalServer("INTERNAL", "An error occurred while processing your request.")
	ErrPDFUnavailable  = errors.New(501, "PDF_UNAVAILABLE", "PDF generation service is not available.")
	ErrPDFFailed       = errors.InternalServer("PDF_FAILED", "An error occurred while generating the PDF report.")
	ErrBadLimit        = errors.BadRequest("BAD_LIMIT", "limit must be an integer")
)
