package models

import "encoding/json"

// DateRange is the inclusive period a summary covered.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SummaryResponse is the success body of POST /reasoning/summarize.
type SummaryResponse struct {
	Summary   string         `json:"summary"`
	Mode      SummaryMode    `json:"mode,omitempty"`
	DateRange *DateRange     `json:"date_range,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// ExplainResponse is the success body of POST /reasoning/explain.
type ExplainResponse struct {
	ConceptName  string `json:"concept_name,omitempty"`
	Explanation  string `json:"explanation"`
	Personalized bool   `json:"personalized,omitempty"`
}

// GuidanceContext is the context the backend used to produce guidance.
type GuidanceContext struct {
	TotalConceptsLearned int `json:"total_concepts_learned"`
	DaysLogged           int `json:"days_logged"`
}

// GuidanceResponse is the success body of GET /reasoning/guidance.
type GuidanceResponse struct {
	Guidance string           `json:"guidance"`
	Context  *GuidanceContext `json:"context,omitempty"`
}

// HealthStatus is the body of GET /health. Its shape is backend-defined; unknown keys
// are kept in Extra.
type HealthStatus struct {
	Status  string         `json:"status"`
	App     string         `json:"app,omitempty"`
	Version string         `json:"version,omitempty"`
	Extra   map[string]any `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (h *HealthStatus) UnmarshalJSON(data []byte) error {
	type plain HealthStatus
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, "status", "app", "version")
	if err != nil {
		return err
	}
	*h = HealthStatus(p)
	h.Extra = extra
	return nil
}

// MarshalJSON encodes the known fields plus Extra.
func (h HealthStatus) MarshalJSON() ([]byte, error) {
	type plain HealthStatus
	return mergeExtra(plain(h), h.Extra)
}
