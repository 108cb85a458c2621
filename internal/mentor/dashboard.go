package mentor

import (
	"context"
	"errors"

	"github.com/hyperjump/internai/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dashboard is an overview of backend status and recent activity. A failed part is
// reported in its error field.
type Dashboard struct {
	Health      *models.HealthStatus    `json:"health,omitempty"`
	HealthError string                  `json:"health_error,omitempty"`
	Recent      []models.DailyLogRecord `json:"recent"`
	RecentError string                  `json:"recent_error,omitempty"`
	DaysLogged  int                     `json:"days_logged"`
	Concepts    []string                `json:"concepts,omitempty"`
}

// Dashboard fetches health and the n most recent logs concurrently. It fails only when
// both fetches fail.
func (m *Mentor) Dashboard(ctx context.Context, n int) (*Dashboard, error) {
	var (
		g         errgroup.Group
		health    *models.HealthStatus
		recent    []models.DailyLogRecord
		healthErr error
		recentErr error
	)
	g.Go(func() error {
		health, healthErr = m.backend.Health(ctx)
		return nil
	})
	g.Go(func() error {
		recent, recentErr = m.backend.ListDailyLogs(ctx, 0, n)
		return nil
	})
	_ = g.Wait()

	if healthErr != nil && recentErr != nil {
		return nil, errors.Join(healthErr, recentErr)
	}
	d := &Dashboard{Health: health, Recent: recent}
	if healthErr != nil {
		m.logger.Warn("dashboard health check failed", zap.Error(healthErr))
		d.HealthError = healthErr.Error()
	}
	if recentErr != nil {
		m.logger.Warn("dashboard recent logs failed", zap.Error(recentErr))
		d.RecentError = recentErr.Error()
	}
	if d.Recent == nil {
		d.Recent = []models.DailyLogRecord{}
	}
	d.DaysLogged = len(d.Recent)
	d.Concepts = recentConcepts(d.Recent)
	return d, nil
}

func recentConcepts(recs []models.DailyLogRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range recs {
		if rec.StructuredData == nil {
			continue
		}
		for _, c := range rec.StructuredData.Concepts {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
