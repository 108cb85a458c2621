package stub

import (
	"testing"
	"time"

	"github.com/hyperjump/internai/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) models.Date {
	return models.NewDate(2026, time.January, d)
}

func TestStore_CreateGet(t *testing.T) {
	s := NewStore()
	rec, err := s.Create(models.DailyLogSubmission{LogDate: day(22), RawText: "Learned Go generics"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, UserID, rec.UserID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.Get(day(22))
	require.NoError(t, err)
	assert.Equal(t, "Learned Go generics", got.RawText)
	assert.Equal(t, rec.ID, got.ID)

	_, err = s.Get(day(23))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Duplicate(t *testing.T) {
	s := NewStore()
	_, err := s.Create(models.DailyLogSubmission{LogDate: day(1), RawText: "a"})
	require.NoError(t, err)
	_, err = s.Create(models.DailyLogSubmission{LogDate: day(1), RawText: "b"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestStore_ListAndBetween(t *testing.T) {
	s := NewStore()
	for _, d := range []int{3, 1, 5, 2, 4} {
		_, err := s.Create(models.DailyLogSubmission{LogDate: day(d), RawText: "log"})
		require.NoError(t, err)
	}

	dates := func(recs []models.DailyLogRecord) []string {
		out := make([]string, 0, len(recs))
		for _, r := range recs {
			out = append(out, r.LogDate.String())
		}
		return out
	}

	assert.Equal(t, []string{"2026-01-05", "2026-01-04"}, dates(s.List(0, 2)))
	assert.Equal(t, []string{"2026-01-03", "2026-01-02"}, dates(s.List(2, 2)))
	assert.Empty(t, s.List(10, 2))
	assert.NotNil(t, s.List(0, 0))
	assert.Equal(t, []string{"2026-01-02", "2026-01-03", "2026-01-04"}, dates(s.Between(day(2), day(4))))
	assert.Empty(t, s.Between(day(10), day(12)))
	assert.Equal(t, 5, s.Len())
}

func TestStore_Concepts(t *testing.T) {
	s := NewStore()
	_, err := s.Create(models.DailyLogSubmission{LogDate: day(1), RawText: "Worked on Docker and Redis."})
	require.NoError(t, err)
	_, err = s.Create(models.DailyLogSubmission{LogDate: day(2), RawText: "More work on Docker networking."})
	require.NoError(t, err)

	concepts := s.Concepts()
	require.Len(t, concepts, 2)
	assert.Equal(t, "Docker", concepts[0].Name)
	assert.Equal(t, 2, concepts[0].Count)
	assert.Equal(t, day(1).String(), concepts[0].FirstSeen.String())
	assert.Equal(t, "Redis", concepts[1].Name)
	assert.NotEmpty(t, concepts[0].ID)
}
