// Package mentor is the orchestration layer between the front end and the backend:
// it routes questions, builds requests, calls the transport, and normalizes responses.
package mentor

import (
	"context"
	"errors"
	"strings"

	"github.com/hyperjump/internai/internal/intent"
	"github.com/hyperjump/internai/internal/models"
	"github.com/hyperjump/internai/internal/normalize"
	"github.com/hyperjump/internai/internal/request"
	"go.uber.org/zap"
)

// ErrEmptyQuestion is returned by Ask for a blank question. Nothing is sent.
var ErrEmptyQuestion = errors.New("question is empty")

// Backend is the set of backend capabilities the mentor uses. *client.Client implements it.
type Backend interface {
	CreateDailyLog(ctx context.Context, sub models.DailyLogSubmission) (*models.DailyLogRecord, error)
	GetDailyLog(ctx context.Context, date models.Date) (*models.DailyLogRecord, error)
	ListDailyLogs(ctx context.Context, skip, limit int) ([]models.DailyLogRecord, error)
	GenerateSummary(ctx context.Context, req models.SummaryRequest) (*models.SummaryResponse, error)
	ExplainConcept(ctx context.Context, req models.ExplainRequest) (*models.ExplainResponse, error)
	SemanticSearch(ctx context.Context, q models.SearchQuery) (*models.SearchResponse, error)
	LearningGuidance(ctx context.Context) (*models.GuidanceResponse, error)
	Health(ctx context.Context) (*models.HealthStatus, error)
}

// Mentor answers questions and runs journal actions against a Backend.
type Mentor struct {
	backend    Backend
	classifier *intent.Classifier
	logger     *zap.Logger
}

// Option configures a Mentor.
type Option func(*Mentor)

// WithLogger sets a logger for routing decisions.
func WithLogger(l *zap.Logger) Option {
	return func(m *Mentor) { m.logger = l }
}

// WithClassifier replaces the default question router.
func WithClassifier(c *intent.Classifier) Option {
	return func(m *Mentor) { m.classifier = c }
}

// New creates a mentor over backend.
func New(backend Backend, opts ...Option) *Mentor {
	m := &Mentor{
		backend:    backend,
		classifier: intent.NewClassifier(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Answer is the reply to a question. Text is opaque prose, the same for both intents.
type Answer struct {
	Question string        `json:"question,omitempty"`
	Intent   intent.Intent `json:"intent"`
	Rule     string        `json:"rule,omitempty"`
	Concept  string        `json:"concept,omitempty"`
	Pattern  string        `json:"pattern,omitempty"`
	Text     string        `json:"answer"`
	// Context is set for guidance answers when the backend reports it.
	Context *models.GuidanceContext `json:"context,omitempty"`
}

// Ask routes a free-form question to explanation or guidance and returns the prose.
func (m *Mentor) Ask(ctx context.Context, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}
	route := m.classifier.Route(question)
	m.logger.Debug("question routed",
		zap.String("intent", route.Intent.String()),
		zap.String("rule", route.Rule),
		zap.String("concept", route.Concept),
		zap.String("pattern", route.Pattern))

	var (
		ans *Answer
		err error
	)
	switch route.Intent {
	case intent.LearningGuidance:
		ans, err = m.Guidance(ctx)
	default:
		ans, err = m.Explain(ctx, route.Concept)
	}
	if err != nil {
		return nil, err
	}
	ans.Question = question
	ans.Rule = route.Rule
	ans.Pattern = route.Pattern
	return ans, nil
}

// Explain asks the backend to explain concept.
func (m *Mentor) Explain(ctx context.Context, concept string) (*Answer, error) {
	resp, err := m.backend.ExplainConcept(ctx, request.Explain(concept))
	if err != nil {
		return nil, err
	}
	return &Answer{Intent: intent.ExplainConcept, Concept: concept, Text: normalize.Explanation(resp)}, nil
}

// Guidance asks the backend what to learn next.
func (m *Mentor) Guidance(ctx context.Context) (*Answer, error) {
	resp, err := m.backend.LearningGuidance(ctx)
	if err != nil {
		return nil, err
	}
	return &Answer{Intent: intent.LearningGuidance, Text: normalize.Guidance(resp), Context: resp.Context}, nil
}

// Health returns the backend's health report.
func (m *Mentor) Health(ctx context.Context) (*models.HealthStatus, error) {
	return m.backend.Health(ctx)
}
