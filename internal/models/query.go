package models

import (
	"fmt"
	"strings"
)

// SummaryMode selects the period a summary covers.
type SummaryMode string

const (
	SummaryDaily   SummaryMode = "daily"
	SummaryWeekly  SummaryMode = "weekly"
	SummaryMonthly SummaryMode = "monthly"
)

// ParseSummaryMode parses a case-insensitive mode name.
func ParseSummaryMode(s string) (SummaryMode, error) {
	switch m := SummaryMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SummaryDaily, SummaryWeekly, SummaryMonthly:
		return m, nil
	default:
		return "", fmt.Errorf("unknown summary mode %q (want daily, weekly or monthly)", s)
	}
}

// PeriodDays returns how many days the backend covers when end_date is omitted.
func (m SummaryMode) PeriodDays() int {
	switch m {
	case SummaryWeekly:
		return 7
	case SummaryMonthly:
		return 30
	default:
		return 1
	}
}

// SummaryRequest is the body of POST /reasoning/summarize.
// EndDate is nil when the backend should derive the period end.
type SummaryRequest struct {
	Mode      SummaryMode `json:"mode"`
	StartDate Date        `json:"start_date"`
	EndDate   *Date       `json:"end_date,omitempty"`
}

// EndPrecedesStart reports whether an explicit end date is earlier than the start date.
// The backend does not reject this; callers decide whether to warn.
func (r *SummaryRequest) EndPrecedesStart() bool {
	return r.EndDate != nil && r.EndDate.Before(r.StartDate)
}

// SearchScope selects the collection a semantic search runs against.
type SearchScope string

const (
	ScopeConcepts SearchScope = "concepts"
	ScopeLogs     SearchScope = "logs"
)

// ParseSearchScope parses a case-insensitive scope name.
func ParseSearchScope(s string) (SearchScope, error) {
	switch sc := SearchScope(strings.ToLower(strings.TrimSpace(s))); sc {
	case ScopeConcepts, ScopeLogs:
		return sc, nil
	default:
		return "", fmt.Errorf("unknown search scope %q (want concepts or logs)", s)
	}
}

// SearchQuery is the body of POST /reasoning/search.
type SearchQuery struct {
	Query      string      `json:"query"`
	SearchType SearchScope `json:"search_type"`
	Limit      int         `json:"limit"`
}

// ExplainRequest is the body of POST /reasoning/explain.
type ExplainRequest struct {
	ConceptName string `json:"concept_name"`
}
