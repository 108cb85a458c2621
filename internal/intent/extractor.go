package intent

import (
	"regexp"
	"strings"
)

// Pattern captures a concept phrase in its first submatch.
type Pattern struct {
	Name string
	Re   *regexp.Regexp
}

// DefaultPatterns are tried in order; the first match wins.
var DefaultPatterns = []Pattern{
	{Name: "explain", Re: regexp.MustCompile(`(?i)explain\s+(.+?)(?:\s+to\s+me)?$`)},
	{Name: "what_is", Re: regexp.MustCompile(`(?i)what\s+is\s+(.+?)(?:\?)?$`)},
}

// Extractor pulls a concept name out of a question.
type Extractor struct {
	patterns []Pattern
}

// NewExtractor returns an extractor over patterns, or DefaultPatterns when none are given.
func NewExtractor(patterns ...Pattern) *Extractor {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &Extractor{patterns: patterns}
}

// Extract returns the captured concept and the pattern name. The capture is returned
// as-is. A capture that is blank after trimming does not count as a match. When nothing
// matches the whole question is returned with pattern "verbatim".
func (e *Extractor) Extract(question string) (concept, pattern string) {
	for _, p := range e.patterns {
		m := p.Re.FindStringSubmatch(question)
		if len(m) < 2 || strings.TrimSpace(m[1]) == "" {
			continue
		}
		return m[1], p.Name
	}
	return question, "verbatim"
}

// ExtractConcept uses DefaultPatterns.
func ExtractConcept(question string) string {
	concept, _ := NewExtractor().Extract(question)
	return concept
}
