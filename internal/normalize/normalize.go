// Package normalize maps typed backend responses into the small set of shapes the
// front end displays.
package normalize

import (
	"strings"

	"github.com/hyperjump/internai/internal/models"
)

// SummaryView is a generated summary ready for display.
type SummaryView struct {
	Text      string             `json:"summary"`
	WordCount int                `json:"word_count"`
	Mode      models.SummaryMode `json:"mode,omitempty"`
	DateRange *models.DateRange  `json:"date_range,omitempty"`
}

// Summary extracts the summary text and its word count.
func Summary(resp *models.SummaryResponse) SummaryView {
	if resp == nil {
		return SummaryView{}
	}
	return SummaryView{
		Text:      resp.Summary,
		WordCount: WordCount(resp.Summary),
		Mode:      resp.Mode,
		DateRange: resp.DateRange,
	}
}

// WordCount counts tokens separated by runs of whitespace. Leading and trailing
// whitespace do not produce empty tokens, so "" counts 0 and "a  b" counts 2.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Explanation returns the explanation prose.
func Explanation(resp *models.ExplainResponse) string {
	if resp == nil {
		return ""
	}
	return resp.Explanation
}

// Guidance returns the guidance prose.
func Guidance(resp *models.GuidanceResponse) string {
	if resp == nil {
		return ""
	}
	return resp.Guidance
}

// SearchResults returns the result list in backend order. It never returns nil.
func SearchResults(resp *models.SearchResponse) []models.SearchResult {
	if resp == nil || resp.Results == nil {
		return []models.SearchResult{}
	}
	return resp.Results
}
