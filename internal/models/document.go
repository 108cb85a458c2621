package models

import "encoding/json"

// DailyLogSubmission is the body of POST /logs/daily.
type DailyLogSubmission struct {
	LogDate Date   `json:"log_date"`
	RawText string `json:"raw_text"`
}

// DailyLogRecord is a daily log as stored by the backend. Read-only once received.
type DailyLogRecord struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	LogDate         Date           `json:"log_date"`
	RawText         string         `json:"raw_text"`
	StructuredData  *ExtractedData `json:"structured_data,omitempty"`
	Mood            string         `json:"mood,omitempty"`
	DifficultyLevel string         `json:"difficulty_level,omitempty"`
	CreatedAt       Timestamp      `json:"created_at"`
	UpdatedAt       Timestamp      `json:"updated_at"`
}

// ExtractedData is the structure the backend extracts from a log's free text.
// A missing field means "not extracted", never an error.
type ExtractedData struct {
	Concepts        []string     `json:"concepts,omitempty"`
	Activities      []Activity   `json:"activities,omitempty"`
	Assignments     []Assignment `json:"assignments,omitempty"`
	KeyLearnings    []string     `json:"key_learnings,omitempty"`
	Mood            string       `json:"mood,omitempty"`
	DifficultyLevel string       `json:"difficulty_level,omitempty"`
	// Extra holds keys the backend sent that have no field above.
	Extra map[string]any `json:"-"`
}

var extractedDataKeys = []string{"concepts", "activities", "assignments", "key_learnings", "mood", "difficulty_level"}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (e *ExtractedData) UnmarshalJSON(data []byte) error {
	type plain ExtractedData
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, extractedDataKeys...)
	if err != nil {
		return err
	}
	*e = ExtractedData(p)
	e.Extra = extra
	return nil
}

// MarshalJSON encodes the known fields plus Extra.
func (e ExtractedData) MarshalJSON() ([]byte, error) {
	type plain ExtractedData
	return mergeExtra(plain(e), e.Extra)
}

// IsEmpty reports whether nothing at all was extracted.
func (e *ExtractedData) IsEmpty() bool {
	return e == nil || (len(e.Concepts) == 0 && len(e.Activities) == 0 && len(e.Assignments) == 0 &&
		len(e.KeyLearnings) == 0 && e.Mood == "" && e.DifficultyLevel == "")
}

// Activity is one extracted activity. DurationMinutes is nil when not stated.
type Activity struct {
	Type            string `json:"type,omitempty"`
	Description     string `json:"description"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}

// Assignment is one extracted assignment. DueDate is kept verbatim.
type Assignment struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}
