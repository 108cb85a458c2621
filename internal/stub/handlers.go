package stub

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/internai/internal/models"
	"go.uber.org/zap"
)

const (
	defaultListLimit   = 10
	defaultSearchLimit = 5
	summaryExcerptLen  = 200
)

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	var sub models.DailyLogSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		s.respondValidation(w, "body", err.Error())
		return
	}
	if sub.LogDate.IsZero() {
		s.respondValidation(w, "log_date", "field required")
		return
	}
	if strings.TrimSpace(sub.RawText) == "" {
		s.respondValidation(w, "raw_text", "ensure this value has at least 1 characters")
		return
	}
	rec, err := s.store.Create(sub)
	if errors.Is(err, ErrDuplicate) {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Log for %s already exists. Use PUT to update.", sub.LogDate))
		return
	}
	if err != nil {
		s.logger.Error("create log failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Debug("log created", zap.String("date", sub.LogDate.String()), zap.String("id", rec.ID),
		zap.Int("concepts", len(rec.StructuredData.Concepts)))
	s.respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	date, err := models.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		s.respondValidation(w, "log_date", err.Error())
		return
	}
	rec, err := s.store.Get(date)
	if err != nil {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("No log found for %s", date))
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		s.respondValidation(w, "skip", err.Error())
		return
	}
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil {
		s.respondValidation(w, "limit", err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, s.store.List(skip, limit))
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondValidation(w, "body", err.Error())
		return
	}
	mode, err := models.ParseSummaryMode(string(req.Mode))
	if err != nil {
		s.respondValidation(w, "mode", err.Error())
		return
	}
	if req.StartDate.IsZero() {
		s.respondValidation(w, "start_date", "field required")
		return
	}
	end := req.StartDate.AddDays(mode.PeriodDays() - 1)
	if req.EndDate != nil && !req.EndDate.IsZero() {
		end = *req.EndDate
	}
	logs := s.store.Between(req.StartDate, end)
	if len(logs) == 0 {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("No logs found between %s and %s", req.StartDate, end))
		return
	}
	s.logger.Debug("summarize", zap.String("mode", string(mode)), zap.Int("logs", len(logs)))
	s.respondJSON(w, http.StatusOK, models.SummaryResponse{
		Summary:   diaryEntry(mode, logs),
		Mode:      mode,
		DateRange: &models.DateRange{Start: req.StartDate.String(), End: end.String()},
		Metadata:  map[string]any{"total_days": len(logs), "avg_difficulty": averageDifficulty(logs)},
	})
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req models.ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondValidation(w, "body", err.Error())
		return
	}
	name := strings.TrimSpace(req.ConceptName)
	if name == "" {
		s.respondValidation(w, "concept_name", "field required")
		return
	}
	resp := models.ExplainResponse{ConceptName: req.ConceptName, Personalized: true}
	if c, ok := s.findConcept(name); ok {
		resp.Explanation = fmt.Sprintf("**%s** is something you first logged on %s and have mentioned in %d log(s). "+
			"Revisit those entries and try to restate %s in your own words, then apply it in a small exercise.",
			c.Name, c.FirstSeen, c.Count, c.Name)
	} else {
		resp.Explanation = fmt.Sprintf("**%s** does not appear in your journal yet. "+
			"Start with its core definition, find one worked example, and log what you try so later explanations can build on it.",
			name)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var q models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		s.respondValidation(w, "body", err.Error())
		return
	}
	if q.Limit <= 0 {
		q.Limit = defaultSearchLimit
	}
	var results []scored
	switch q.SearchType {
	case models.ScopeConcepts:
		for _, c := range s.store.Concepts() {
			if score := matchScore(q.Query, c.Name); score > 0 {
				results = append(results, scored{score, models.ConceptContent{ConceptID: c.ID, Name: c.Name}})
			}
		}
	case models.ScopeLogs:
		for _, rec := range s.store.List(0, s.store.Len()) {
			if score := matchScore(q.Query, rec.RawText); score > 0 {
				results = append(results, scored{score, logContent(rec)})
			}
		}
	default:
		s.respondError(w, http.StatusBadRequest, "search_type must be 'concepts' or 'logs'")
		return
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })
	if len(results) > q.Limit {
		results = results[:q.Limit]
	}
	type wireResult struct {
		Score   float64 `json:"score"`
		Content any     `json:"content"`
	}
	out := make([]wireResult, 0, len(results))
	for _, res := range results {
		out = append(out, wireResult{Score: res.score, Content: res.content})
	}
	s.logger.Debug("search", zap.String("query", q.Query), zap.String("type", string(q.SearchType)), zap.Int("results", len(out)))
	s.respondJSON(w, http.StatusOK, map[string]any{"query": q.Query, "results": out})
}

func (s *Server) handleGuidance(w http.ResponseWriter, r *http.Request) {
	recent := s.store.List(0, defaultListLimit)
	concepts := s.store.Concepts()
	var text string
	if len(recent) == 0 {
		text = "Start by logging what you worked on today. Guidance gets more specific as your journal grows."
	} else {
		names := make([]string, 0, 3)
		for i := 0; i < len(concepts) && i < 3; i++ {
			names = append(names, concepts[i].Name)
		}
		text = fmt.Sprintf("You have logged %d recent day(s) and worked with %d concept(s).", len(recent), len(concepts))
		if len(names) > 0 {
			text += fmt.Sprintf(" Your strongest threads are %s. Next, go one level deeper on %s and write down what you build with it.",
				strings.Join(names, ", "), names[0])
		}
	}
	s.respondJSON(w, http.StatusOK, models.GuidanceResponse{
		Guidance: text,
		Context:  &models.GuidanceContext{TotalConceptsLearned: len(concepts), DaysLogged: len(recent)},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, models.HealthStatus{Status: "healthy", App: AppName, Version: s.version})
}

func (s *Server) findConcept(name string) (Concept, bool) {
	for _, c := range s.store.Concepts() {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Concept{}, false
}

type scored struct {
	score   float64
	content any
}

// matchScore scores text against query in [0,1]: 1 for a whole-query substring match,
// otherwise the fraction of query words found, scaled below 1.
func matchScore(query, text string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(text)
	if q == "" {
		return 0
	}
	if strings.Contains(t, q) {
		return 1
	}
	words := strings.Fields(q)
	hits := 0
	for _, w := range words {
		if strings.Contains(t, w) {
			hits++
		}
	}
	return 0.9 * float64(hits) / float64(len(words))
}

func logContent(rec models.DailyLogRecord) models.LogContent {
	summary := rec.RawText
	if r := []rune(summary); len(r) > summaryExcerptLen {
		summary = string(r[:summaryExcerptLen])
	}
	var concepts []string
	if rec.StructuredData != nil {
		concepts = rec.StructuredData.Concepts
	}
	return models.LogContent{LogID: rec.ID, LogDate: rec.LogDate.String(), Summary: summary, Concepts: concepts}
}

func diaryEntry(mode models.SummaryMode, logs []models.DailyLogRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## VTU Diary Entry (%s)\n\n", mode)
	seen := make(map[string]bool)
	var concepts []string
	for _, rec := range logs {
		fmt.Fprintf(&b, "- **%s**: %s\n", rec.LogDate, firstSentence(rec.RawText))
		if rec.StructuredData == nil {
			continue
		}
		for _, c := range rec.StructuredData.Concepts {
			if !seen[strings.ToLower(c)] {
				seen[strings.ToLower(c)] = true
				concepts = append(concepts, c)
			}
		}
	}
	if len(concepts) > 0 {
		fmt.Fprintf(&b, "\nConcepts covered: %s.\n", strings.Join(concepts, ", "))
	}
	return b.String()
}

func firstSentence(text string) string {
	if list := sentences(text); len(list) > 0 {
		return list[0]
	}
	return strings.TrimSpace(text)
}

func averageDifficulty(logs []models.DailyLogRecord) string {
	rank := map[string]int{"easy": 1, "medium": 2, "hard": 3}
	sum, n := 0, 0
	for _, rec := range logs {
		if v, ok := rank[rec.DifficultyLevel]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return "medium"
	}
	switch avg := float64(sum) / float64(n); {
	case avg < 1.5:
		return "easy"
	case avg >= 2.5:
		return "hard"
	default:
		return "medium"
	}
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("value is not a valid non-negative integer")
	}
	return n, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"detail": message})
}

// respondValidation writes a 422 whose detail is a list of field errors.
func (s *Server) respondValidation(w http.ResponseWriter, field, message string) {
	s.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{{
			"loc":  []string{"body", field},
			"msg":  message,
			"type": "value_error",
		}},
	})
}
