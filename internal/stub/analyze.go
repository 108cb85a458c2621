package stub

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hyperjump/internai/internal/models"
)

var (
	sentenceRe = regexp.MustCompile(`[^.!?\n]+[.!?]?`)
	termRe     = regexp.MustCompile(`\b[A-Z][A-Za-z0-9]*(?:[+#-][A-Za-z0-9]+)*\+*#?`)
	durationRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(hours?|hrs?|minutes?|mins?)\b`)
	isoDateRe  = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
)

var stopTerms = map[string]bool{
	"I": true, "Today": true, "Yesterday": true, "Tomorrow": true, "The": true,
	"A": true, "An": true, "Also": true, "Then": true, "It": true, "We": true,
}

var activityKeywords = []struct {
	kind  string
	words []string
}{
	{"debugging", []string{"debug", "fix", "bug"}},
	{"meeting", []string{"meeting", "standup", "call with", "sync with"}},
	{"coding", []string{"implement", "wrote", "code", "built", "build", "refactor"}},
	{"learning", []string{"learn", "reading", "read about", "studied", "tutorial", "course"}},
}

var moodKeywords = []struct {
	mood  string
	words []string
}{
	{"frustrated", []string{"frustrat", "stuck", "annoy"}},
	{"excited", []string{"excited", "awesome", "amazing"}},
	{"negative", []string{"tired", "exhausted", "bad day"}},
	{"positive", []string{"happy", "good", "productive", "enjoy"}},
}

var difficultyKeywords = []struct {
	level string
	words []string
}{
	{"hard", []string{"hard", "difficult", "challenging", "struggl", "stuck"}},
	{"easy", []string{"easy", "simple", "straightforward"}},
}

// analyze derives structured data from a log's free text with keyword heuristics.
// It stands in for the backend's language-model extraction.
func analyze(raw string) *models.ExtractedData {
	data := &models.ExtractedData{}
	seen := make(map[string]bool)
	for _, sentence := range sentences(raw) {
		for _, term := range terms(sentence) {
			if !seen[strings.ToLower(term)] {
				seen[strings.ToLower(term)] = true
				data.Concepts = append(data.Concepts, term)
			}
		}
		lower := strings.ToLower(sentence)
		if kind := firstMatch(lower, activityKeywords); kind != "" || durationRe.MatchString(sentence) {
			if kind == "" {
				kind = "coding"
			}
			data.Activities = append(data.Activities, models.Activity{
				Type:            kind,
				Description:     sentence,
				DurationMinutes: durationMinutes(sentence),
			})
		}
		if strings.Contains(lower, "assignment") || strings.Contains(lower, "deadline") {
			data.Assignments = append(data.Assignments, models.Assignment{
				Title:   sentence,
				DueDate: isoDateRe.FindString(sentence),
			})
		}
		if strings.Contains(lower, "learned") || strings.Contains(lower, "learnt") {
			data.KeyLearnings = append(data.KeyLearnings, sentence)
		}
	}
	lower := strings.ToLower(raw)
	data.Mood = "neutral"
	for _, m := range moodKeywords {
		if containsAny(lower, m.words) {
			data.Mood = m.mood
			break
		}
	}
	data.DifficultyLevel = "medium"
	for _, d := range difficultyKeywords {
		if containsAny(lower, d.words) {
			data.DifficultyLevel = d.level
			break
		}
	}
	return data
}

func sentences(raw string) []string {
	var out []string
	for _, s := range sentenceRe.FindAllString(raw, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// terms returns capitalized terms in sentence, joining adjacent ones ("JWT Authentication").
// The sentence's first word is skipped unless it is an acronym.
func terms(sentence string) []string {
	var out []string
	prevEnd := -1
	for _, loc := range termRe.FindAllStringIndex(sentence, -1) {
		word := sentence[loc[0]:loc[1]]
		if stopTerms[word] || (loc[0] == 0 && !isAcronym(word)) {
			prevEnd = -1
			continue
		}
		if prevEnd >= 0 && sentence[prevEnd:loc[0]] == " " {
			out[len(out)-1] += " " + word
		} else {
			out = append(out, word)
		}
		prevEnd = loc[1]
	}
	return out
}

func isAcronym(word string) bool {
	return len(word) > 1 && strings.ToUpper(word) == word
}

func durationMinutes(sentence string) *int {
	m := durationRe.FindStringSubmatch(sentence)
	if m == nil {
		return nil
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		n *= 60
	}
	minutes := int(n)
	return &minutes
}

func firstMatch(lower string, table []struct {
	kind  string
	words []string
}) string {
	for _, row := range table {
		if containsAny(lower, row.words) {
			return row.kind
		}
	}
	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
