// Package request builds the typed payloads sent to each backend capability from
// fields collected by the front end.
package request

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/internai/internal/models"
)

// ErrEmptyText is returned when a daily log is built from blank text. Callers are
// expected to check before building; this is a precondition, not a user-facing error.
var ErrEmptyText = errors.New("daily log raw text must not be empty")

// DailyLog passes logDate and rawText through unchanged.
func DailyLog(logDate models.Date, rawText string) (models.DailyLogSubmission, error) {
	if strings.TrimSpace(rawText) == "" {
		return models.DailyLogSubmission{}, ErrEmptyText
	}
	return models.DailyLogSubmission{LogDate: logDate, RawText: rawText}, nil
}

// Summary builds a summary request. end is the raw end-date field: when blank the
// end_date key is omitted so the backend derives the period end from mode.
// A non-blank end must be a valid date; it is not checked against start.
func Summary(mode models.SummaryMode, start models.Date, end string) (models.SummaryRequest, error) {
	req := models.SummaryRequest{Mode: mode, StartDate: start}
	if strings.TrimSpace(end) == "" {
		return req, nil
	}
	endDate, err := models.ParseDate(end)
	if err != nil {
		return models.SummaryRequest{}, fmt.Errorf("end date: %w", err)
	}
	req.EndDate = &endDate
	return req, nil
}

// Search passes text, scope and limit through. The caller owns the limit default.
func Search(text string, scope models.SearchScope, limit int) models.SearchQuery {
	return models.SearchQuery{Query: text, SearchType: scope, Limit: limit}
}

// Explain wraps an extracted concept name.
func Explain(concept string) models.ExplainRequest {
	return models.ExplainRequest{ConceptName: concept}
}
