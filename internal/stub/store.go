package stub

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/internai/internal/models"
)

// UserID is the single user every stored log belongs to.
const UserID = "00000000-0000-0000-0000-000000000001"

var (
	// ErrDuplicate is returned when a log already exists for the date.
	ErrDuplicate = errors.New("log already exists")
	// ErrNotFound is returned when no log exists for the date.
	ErrNotFound = errors.New("log not found")
)

// Store keeps daily logs in memory, one per date. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	logs map[string]models.DailyLogRecord
	now  func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{logs: make(map[string]models.DailyLogRecord), now: time.Now}
}

// Create stores a new log and its extracted data.
func (s *Store) Create(sub models.DailyLogSubmission) (models.DailyLogRecord, error) {
	key := sub.LogDate.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[key]; ok {
		return models.DailyLogRecord{}, ErrDuplicate
	}
	data := analyze(sub.RawText)
	now := models.Timestamp{Time: s.now().UTC()}
	rec := models.DailyLogRecord{
		ID:              uuid.New().String(),
		UserID:          UserID,
		LogDate:         sub.LogDate,
		RawText:         sub.RawText,
		StructuredData:  data,
		Mood:            data.Mood,
		DifficultyLevel: data.DifficultyLevel,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.logs[key] = rec
	return rec, nil
}

// Get returns the log for date.
func (s *Store) Get(date models.Date) (models.DailyLogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.logs[date.String()]
	if !ok {
		return models.DailyLogRecord{}, ErrNotFound
	}
	return rec, nil
}

// List returns logs newest first, skipping skip and returning at most limit.
func (s *Store) List(skip, limit int) []models.DailyLogRecord {
	all := s.sorted(true)
	if skip >= len(all) || limit <= 0 {
		return []models.DailyLogRecord{}
	}
	all = all[skip:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// Between returns logs dated in [start, end], oldest first.
func (s *Store) Between(start, end models.Date) []models.DailyLogRecord {
	var out []models.DailyLogRecord
	for _, rec := range s.sorted(false) {
		if !rec.LogDate.Before(start) && !end.Before(rec.LogDate) {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of stored logs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs)
}

func (s *Store) sorted(newestFirst bool) []models.DailyLogRecord {
	s.mu.RLock()
	out := make([]models.DailyLogRecord, 0, len(s.logs))
	for _, rec := range s.logs {
		out = append(out, rec)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[j].LogDate.Before(out[i].LogDate)
		}
		return out[i].LogDate.Before(out[j].LogDate)
	})
	return out
}

// Concept is a term extracted from one or more logs.
type Concept struct {
	ID        string
	Name      string
	FirstSeen models.Date
	Count     int
}

// Concepts returns every extracted concept, most frequent first.
func (s *Store) Concepts() []Concept {
	byKey := make(map[string]*Concept)
	for _, rec := range s.sorted(false) {
		if rec.StructuredData == nil {
			continue
		}
		for _, name := range rec.StructuredData.Concepts {
			key := strings.ToLower(name)
			c, ok := byKey[key]
			if !ok {
				c = &Concept{
					ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String(),
					Name:      name,
					FirstSeen: rec.LogDate,
				}
				byKey[key] = c
			}
			c.Count++
		}
	}
	out := make([]Concept, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
