// Package intent routes a free-form question to the backend capability that answers it.
//
// Routing is an ordered rule table: the first rule whose predicate matches decides the
// intent, and a question no rule matches falls back to concept explanation. When the
// intent is ExplainConcept, a second ordered table extracts the concept phrase.
package intent

import "strings"

// Intent is the capability a question targets.
type Intent int

const (
	// ExplainConcept routes to POST /reasoning/explain. It is also the fallback.
	ExplainConcept Intent = iota
	// LearningGuidance routes to GET /reasoning/guidance.
	LearningGuidance
)

func (i Intent) String() string {
	switch i {
	case ExplainConcept:
		return "explain_concept"
	case LearningGuidance:
		return "learning_guidance"
	default:
		return "unknown"
	}
}

// MarshalText encodes the intent by name.
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// Rule maps a predicate over the lower-cased question to an intent.
type Rule struct {
	Name   string
	Match  func(lower string) bool
	Intent Intent
}

// ContainsAny returns a predicate that matches when any phrase is a substring.
// Phrases must be lower case.
func ContainsAny(phrases ...string) func(string) bool {
	return func(lower string) bool {
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				return true
			}
		}
		return false
	}
}

// DefaultRules is the routing table used by NewClassifier when none is given.
// "explain" and "what is" have no rule: they already route to the fallback and only
// affect concept extraction.
var DefaultRules = []Rule{
	{Name: "guidance", Match: ContainsAny("should i learn", "what next"), Intent: LearningGuidance},
}

// Route is the outcome of classifying one question.
type Route struct {
	Intent Intent
	// Rule is the name of the matching rule, or "fallback".
	Rule string
	// Concept is set only for ExplainConcept.
	Concept string
	// Pattern is the extraction pattern that produced Concept, or "verbatim".
	Pattern string
}

// Classifier is stateless and safe for concurrent use.
type Classifier struct {
	rules     []Rule
	fallback  Intent
	extractor *Extractor
}

// NewClassifier returns a classifier over rules, or DefaultRules when rules is empty.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Classifier{
		rules:     rules,
		fallback:  ExplainConcept,
		extractor: NewExtractor(),
	}
}

// Classify returns the intent of question: the first matching rule's, else the fallback.
func (c *Classifier) Classify(question string) Intent {
	intent, _ := c.classify(question)
	return intent
}

func (c *Classifier) classify(question string) (Intent, string) {
	lower := strings.ToLower(question)
	for _, r := range c.rules {
		if r.Match(lower) {
			return r.Intent, r.Name
		}
	}
	return c.fallback, "fallback"
}

// Route classifies question and, for ExplainConcept, extracts the concept name.
func (c *Classifier) Route(question string) Route {
	intent, rule := c.classify(question)
	route := Route{Intent: intent, Rule: rule}
	if intent == ExplainConcept {
		route.Concept, route.Pattern = c.extractor.Extract(question)
	}
	return route
}

var defaultClassifier = NewClassifier()

// Classify uses the default rule table.
func Classify(question string) Intent {
	return defaultClassifier.Classify(question)
}
