package mentor

import (
	"context"

	"github.com/hyperjump/internai/internal/models"
	"github.com/hyperjump/internai/internal/normalize"
	"github.com/hyperjump/internai/internal/request"
	"go.uber.org/zap"
)

// LogView is a daily log plus the sections of its extracted data that have content.
type LogView struct {
	Record    *models.DailyLogRecord   `json:"record"`
	Extracted *normalize.ExtractedView `json:"extracted,omitempty"`
}

func newLogView(rec *models.DailyLogRecord) *LogView {
	return &LogView{Record: rec, Extracted: normalize.Extracted(rec)}
}

// SubmitLog creates the log for date. Blank text is rejected with request.ErrEmptyText
// before any call is made.
func (m *Mentor) SubmitLog(ctx context.Context, date models.Date, text string) (*LogView, error) {
	sub, err := request.DailyLog(date, text)
	if err != nil {
		return nil, err
	}
	rec, err := m.backend.CreateDailyLog(ctx, sub)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("log submitted", zap.String("date", date.String()), zap.String("id", rec.ID))
	return newLogView(rec), nil
}

// ShowLog fetches the log for date.
func (m *Mentor) ShowLog(ctx context.Context, date models.Date) (*LogView, error) {
	rec, err := m.backend.GetDailyLog(ctx, date)
	if err != nil {
		return nil, err
	}
	return newLogView(rec), nil
}

// ListLogs returns a page of logs, newest first. The result is never nil.
func (m *Mentor) ListLogs(ctx context.Context, skip, limit int) ([]models.DailyLogRecord, error) {
	recs, err := m.backend.ListDailyLogs(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []models.DailyLogRecord{}
	}
	return recs, nil
}

// Summarize generates a diary summary. end may be empty, in which case the backend
// derives the period end from mode. An end date before start is sent unchanged.
func (m *Mentor) Summarize(ctx context.Context, mode models.SummaryMode, start models.Date, end string) (*normalize.SummaryView, error) {
	req, err := request.Summary(mode, start, end)
	if err != nil {
		return nil, err
	}
	if req.EndPrecedesStart() {
		m.logger.Warn("summary end date precedes start date",
			zap.String("start", req.StartDate.String()), zap.String("end", req.EndDate.String()))
	}
	resp, err := m.backend.GenerateSummary(ctx, req)
	if err != nil {
		return nil, err
	}
	view := normalize.Summary(resp)
	return &view, nil
}

// Search runs a semantic search. The result keeps backend order and is never nil.
func (m *Mentor) Search(ctx context.Context, text string, scope models.SearchScope, limit int) ([]models.SearchResult, error) {
	resp, err := m.backend.SemanticSearch(ctx, request.Search(text, scope, limit))
	if err != nil {
		return nil, err
	}
	return normalize.SearchResults(resp), nil
}
