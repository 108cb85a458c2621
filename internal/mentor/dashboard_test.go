package mentor

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperjump/internai/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	fb := &fakeBackend{
		health: &models.HealthStatus{Status: "healthy"},
		logs: []models.DailyLogRecord{
			{RawText: "a", StructuredData: &models.ExtractedData{Concepts: []string{"Go", "SQL"}}},
			{RawText: "b", StructuredData: &models.ExtractedData{Concepts: []string{"Go"}}},
			{RawText: "c"},
		},
	}
	d, err := New(fb).Dashboard(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "healthy", d.Health.Status)
	assert.Equal(t, 3, d.DaysLogged)
	assert.Equal(t, []string{"Go", "SQL"}, d.Concepts)
	assert.Empty(t, d.HealthError)
	assert.Empty(t, d.RecentError)
}

func TestDashboard_PartialFailure(t *testing.T) {
	fb := &fakeBackend{healthErr: errors.New("Health check failed")}
	d, err := New(fb).Dashboard(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Health check failed", d.HealthError)
	assert.Nil(t, d.Health)
	assert.NotNil(t, d.Recent)
	assert.Zero(t, d.DaysLogged)
}

func TestDashboard_BothFail(t *testing.T) {
	hErr := errors.New("health down")
	lErr := errors.New("list down")
	_, err := New(&fakeBackend{healthErr: hErr, listErr: lErr}).Dashboard(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, hErr)
	assert.ErrorIs(t, err, lErr)
}
