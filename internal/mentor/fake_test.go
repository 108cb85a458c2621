package mentor

import (
	"context"
	"sync"

	"github.com/hyperjump/internai/internal/models"
)

// fakeBackend records requests and returns canned responses or err.
type fakeBackend struct {
	mu          sync.Mutex
	calls       int
	err         error
	healthErr   error
	listErr     error
	health      *models.HealthStatus
	logs        []models.DailyLogRecord
	summary     *models.SummaryResponse
	explain     *models.ExplainResponse
	guidance    *models.GuidanceResponse
	search      *models.SearchResponse
	lastExplain *models.ExplainRequest
	lastSummary *models.SummaryRequest
}

func (f *fakeBackend) call() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeBackend) CreateDailyLog(_ context.Context, sub models.DailyLogSubmission) (*models.DailyLogRecord, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return &models.DailyLogRecord{LogDate: sub.LogDate, RawText: sub.RawText}, nil
}

func (f *fakeBackend) GetDailyLog(_ context.Context, date models.Date) (*models.DailyLogRecord, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return &models.DailyLogRecord{LogDate: date}, nil
}

func (f *fakeBackend) ListDailyLogs(_ context.Context, _, _ int) ([]models.DailyLogRecord, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.logs, nil
}

func (f *fakeBackend) GenerateSummary(_ context.Context, req models.SummaryRequest) (*models.SummaryResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	f.lastSummary = &req
	return f.summary, nil
}

func (f *fakeBackend) ExplainConcept(_ context.Context, req models.ExplainRequest) (*models.ExplainResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	f.lastExplain = &req
	return f.explain, nil
}

func (f *fakeBackend) SemanticSearch(_ context.Context, _ models.SearchQuery) (*models.SearchResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return f.search, nil
}

func (f *fakeBackend) LearningGuidance(_ context.Context) (*models.GuidanceResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return f.guidance, nil
}

func (f *fakeBackend) Health(_ context.Context) (*models.HealthStatus, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return f.health, nil
}
