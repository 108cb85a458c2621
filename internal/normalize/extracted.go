package normalize

import "github.com/hyperjump/internai/internal/models"

// Section names one block of the extracted-data display.
type Section string

const (
	SectionConcepts     Section = "concepts"
	SectionMood         Section = "mood"
	SectionDifficulty   Section = "difficulty"
	SectionActivities   Section = "activities"
	SectionAssignments  Section = "assignments"
	SectionKeyLearnings Section = "key_learnings"
)

// ExtractedView is the structured data of a freshly created log.
type ExtractedView struct {
	Concepts     []string            `json:"concepts,omitempty"`
	Mood         string              `json:"mood,omitempty"`
	Difficulty   string              `json:"difficulty_level,omitempty"`
	Activities   []models.Activity   `json:"activities,omitempty"`
	Assignments  []models.Assignment `json:"assignments,omitempty"`
	KeyLearnings []string            `json:"key_learnings,omitempty"`
}

// Extracted builds the view from rec.StructuredData. Mood and difficulty fall back to
// the record's top-level fields. Returns nil when nothing was extracted.
func Extracted(rec *models.DailyLogRecord) *ExtractedView {
	if rec == nil {
		return nil
	}
	v := &ExtractedView{Mood: rec.Mood, Difficulty: rec.DifficultyLevel}
	if sd := rec.StructuredData; sd != nil {
		v.Concepts = sd.Concepts
		v.Activities = sd.Activities
		v.Assignments = sd.Assignments
		v.KeyLearnings = sd.KeyLearnings
		if sd.Mood != "" {
			v.Mood = sd.Mood
		}
		if sd.DifficultyLevel != "" {
			v.Difficulty = sd.DifficultyLevel
		}
	}
	if len(v.Sections()) == 0 {
		return nil
	}
	return v
}

// Sections lists the sections that have content, in display order.
func (v *ExtractedView) Sections() []Section {
	if v == nil {
		return nil
	}
	var out []Section
	if len(v.Concepts) > 0 {
		out = append(out, SectionConcepts)
	}
	if v.Mood != "" {
		out = append(out, SectionMood)
	}
	if v.Difficulty != "" {
		out = append(out, SectionDifficulty)
	}
	if len(v.Activities) > 0 {
		out = append(out, SectionActivities)
	}
	if len(v.Assignments) > 0 {
		out = append(out, SectionAssignments)
	}
	if len(v.KeyLearnings) > 0 {
		out = append(out, SectionKeyLearnings)
	}
	return out
}
