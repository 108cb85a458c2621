package models

import (
	"encoding/json"
	"fmt"
)

// SearchResult is a single semantic search hit. Content is tagged by the scope the
// search ran against.
type SearchResult struct {
	Score   float64       `json:"score"`
	Content SearchContent `json:"content"`
}

// SearchContent holds exactly one of Concept or Log, according to Scope.
type SearchContent struct {
	Scope   SearchScope
	Concept *ConceptContent
	Log     *LogContent
}

// MarshalJSON encodes whichever variant is set.
func (c SearchContent) MarshalJSON() ([]byte, error) {
	switch {
	case c.Concept != nil:
		return json.Marshal(c.Concept)
	case c.Log != nil:
		return json.Marshal(c.Log)
	default:
		return []byte("null"), nil
	}
}

// DecodeSearchContent decodes a raw result content object into the variant for scope.
func DecodeSearchContent(scope SearchScope, raw json.RawMessage) (SearchContent, error) {
	content := SearchContent{Scope: scope}
	if len(raw) == 0 || string(raw) == "null" {
		return content, nil
	}
	switch scope {
	case ScopeConcepts:
		var cc ConceptContent
		if err := json.Unmarshal(raw, &cc); err != nil {
			return content, fmt.Errorf("decode concept result: %w", err)
		}
		content.Concept = &cc
	case ScopeLogs:
		var lc LogContent
		if err := json.Unmarshal(raw, &lc); err != nil {
			return content, fmt.Errorf("decode log result: %w", err)
		}
		content.Log = &lc
	default:
		return content, fmt.Errorf("unknown search scope %q", scope)
	}
	return content, nil
}

// ConceptContent is a concept hit.
type ConceptContent struct {
	ConceptID  string         `json:"concept_id,omitempty"`
	Name       string         `json:"name"`
	Definition string         `json:"definition,omitempty"`
	Category   string         `json:"category,omitempty"`
	Extra      map[string]any `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (c *ConceptContent) UnmarshalJSON(data []byte) error {
	type plain ConceptContent
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, "concept_id", "name", "definition", "category")
	if err != nil {
		return err
	}
	*c = ConceptContent(p)
	c.Extra = extra
	return nil
}

// MarshalJSON encodes the known fields plus Extra.
func (c ConceptContent) MarshalJSON() ([]byte, error) {
	type plain ConceptContent
	return mergeExtra(plain(c), c.Extra)
}

// LogContent is a daily-log hit.
type LogContent struct {
	LogID    string         `json:"log_id,omitempty"`
	LogDate  string         `json:"log_date,omitempty"`
	Summary  string         `json:"summary"`
	Concepts []string       `json:"concepts,omitempty"`
	Extra    map[string]any `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (c *LogContent) UnmarshalJSON(data []byte) error {
	type plain LogContent
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, "log_id", "log_date", "summary", "concepts")
	if err != nil {
		return err
	}
	*c = LogContent(p)
	c.Extra = extra
	return nil
}

// MarshalJSON encodes the known fields plus Extra.
func (c LogContent) MarshalJSON() ([]byte, error) {
	type plain LogContent
	return mergeExtra(plain(c), c.Extra)
}

// SearchResponse is the typed success body of POST /reasoning/search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}
