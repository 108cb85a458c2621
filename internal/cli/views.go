package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hyperjump/internai/internal/mentor"
	"github.com/hyperjump/internai/internal/models"
	"github.com/hyperjump/internai/internal/normalize"
	"github.com/hyperjump/internai/pkg/utils"
)

const excerptLen = 72

// Answer writes the reply to a question.
func (p *Printer) Answer(a *mentor.Answer) error {
	if p.JSON() {
		return p.writeJSON(a)
	}
	if a.Concept != "" {
		p.printf("%s\n\n", p.style(p.heading, a.Concept))
	}
	p.prose(a.Text)
	if c := a.Context; c != nil {
		p.printf("\n%s\n", p.style(p.faint, fmt.Sprintf("Based on %d concept(s) over %d day(s) logged.",
			c.TotalConceptsLearned, c.DaysLogged)))
	}
	return nil
}

// Summary writes a generated diary summary and its word count.
func (p *Printer) Summary(v *normalize.SummaryView) error {
	if p.JSON() {
		return p.writeJSON(v)
	}
	p.prose(v.Text)
	meta := []string{fmt.Sprintf("%d words", v.WordCount)}
	if v.Mode != "" {
		meta = append(meta, string(v.Mode))
	}
	if r := v.DateRange; r != nil {
		meta = append(meta, r.Start+" to "+r.End)
	}
	p.printf("\n%s\n", p.style(p.faint, strings.Join(meta, " | ")))
	return nil
}

// Log writes one daily log and its extracted sections.
func (p *Printer) Log(v *mentor.LogView) error {
	if p.JSON() {
		return p.writeJSON(v)
	}
	rec := v.Record
	p.printf("%s\n\n%s\n", p.style(p.heading, "Daily log "+rec.LogDate.String()), strings.TrimSpace(rec.RawText))
	if v.Extracted != nil {
		p.printf("\n")
		p.sections(v.Extracted)
	}
	return nil
}

func (p *Printer) sections(x *normalize.ExtractedView) {
	for _, s := range x.Sections() {
		switch s {
		case normalize.SectionConcepts:
			p.field("Concepts", strings.Join(x.Concepts, ", "))
		case normalize.SectionMood:
			p.field("Mood", x.Mood)
		case normalize.SectionDifficulty:
			p.field("Difficulty", x.Difficulty)
		case normalize.SectionActivities:
			p.field("Activities", "")
			for _, a := range x.Activities {
				p.printf("  - %s\n", activityLine(a))
			}
		case normalize.SectionAssignments:
			p.field("Assignments", "")
			for _, a := range x.Assignments {
				line := a.Title
				if a.DueDate != "" {
					line += " (due " + a.DueDate + ")"
				}
				p.printf("  - %s\n", line)
			}
		case normalize.SectionKeyLearnings:
			p.field("Key learnings", "")
			for _, k := range x.KeyLearnings {
				p.printf("  - %s\n", k)
			}
		}
	}
}

func activityLine(a models.Activity) string {
	var b strings.Builder
	if a.Type != "" {
		b.WriteString("[" + a.Type + "] ")
	}
	b.WriteString(a.Description)
	if a.DurationMinutes != nil {
		b.WriteString(" (" + formatMinutes(*a.DurationMinutes) + ")")
	}
	return b.String()
}

func formatMinutes(m int) string {
	switch {
	case m < 60:
		return fmt.Sprintf("%dm", m)
	case m%60 == 0:
		return fmt.Sprintf("%dh", m/60)
	default:
		return fmt.Sprintf("%dh%02dm", m/60, m%60)
	}
}

// Logs writes a listing of daily logs.
func (p *Printer) Logs(recs []models.DailyLogRecord) error {
	if p.JSON() {
		return p.writeJSON(recs)
	}
	if len(recs) == 0 {
		p.printf("No logs yet.\n")
		return nil
	}
	for _, rec := range recs {
		p.printf("%s  %s", p.style(p.label, rec.LogDate.String()), utils.Truncate(utils.FirstLine(rec.RawText), excerptLen))
		var meta []string
		if rec.Mood != "" {
			meta = append(meta, rec.Mood)
		}
		if !rec.CreatedAt.IsZero() {
			meta = append(meta, humanize.RelTime(rec.CreatedAt.Time, p.now(), "ago", "from now"))
		}
		if len(meta) > 0 {
			p.printf("  %s", p.style(p.faint, "("+strings.Join(meta, ", ")+")"))
		}
		p.printf("\n")
	}
	return nil
}

// SearchResults writes results in the order the backend returned them.
func (p *Printer) SearchResults(query string, scope models.SearchScope, results []models.SearchResult) error {
	if p.JSON() {
		return p.writeJSON(models.SearchResponse{Query: query, Results: results})
	}
	if len(results) == 0 {
		p.printf("No results for %q in %s.\n", query, scope)
		return nil
	}
	p.printf("Found %d result(s) for %q in %s\n\n", len(results), query, scope)
	for i, r := range results {
		p.printf("%d. %s %s\n", i+1, p.style(p.faint, fmt.Sprintf("[%.2f]", r.Score)), resultLine(r.Content))
	}
	return nil
}

func resultLine(c models.SearchContent) string {
	switch {
	case c.Concept != nil:
		line := c.Concept.Name
		if c.Concept.Category != "" {
			line += " (" + c.Concept.Category + ")"
		}
		if c.Concept.Definition != "" {
			line += ": " + utils.Truncate(c.Concept.Definition, excerptLen)
		}
		return line
	case c.Log != nil:
		line := utils.Truncate(utils.FirstLine(c.Log.Summary), excerptLen)
		if c.Log.LogDate != "" {
			line = c.Log.LogDate + ": " + line
		}
		return line
	default:
		return "(empty result)"
	}
}

// Dashboard writes the overview.
func (p *Printer) Dashboard(d *mentor.Dashboard) error {
	if p.JSON() {
		return p.writeJSON(d)
	}
	p.printf("%s\n\n", p.style(p.heading, "Dashboard"))
	if d.Health != nil {
		p.field("Backend", healthLine(d.Health))
	} else {
		p.field("Backend", p.style(p.bad, "unavailable ("+d.HealthError+")"))
	}
	if d.RecentError != "" {
		p.field("Recent logs", p.style(p.bad, d.RecentError))
		return nil
	}
	p.field("Days logged recently", fmt.Sprintf("%d", d.DaysLogged))
	if len(d.Concepts) > 0 {
		p.field("Recent concepts", strings.Join(d.Concepts, ", "))
	}
	if len(d.Recent) > 0 {
		p.printf("\n")
		return p.Logs(d.Recent)
	}
	return nil
}

func healthLine(h *models.HealthStatus) string {
	line := h.Status
	var about []string
	if h.App != "" {
		about = append(about, h.App)
	}
	if h.Version != "" {
		about = append(about, h.Version)
	}
	if len(about) > 0 {
		line += " (" + strings.Join(about, " ") + ")"
	}
	return line
}

// Health writes the backend health report, including fields unknown to the client.
func (p *Printer) Health(h *models.HealthStatus) error {
	if p.JSON() {
		return p.writeJSON(h)
	}
	p.field("status", h.Status)
	if h.App != "" {
		p.field("app", h.App)
	}
	if h.Version != "" {
		p.field("version", h.Version)
	}
	keys := make([]string, 0, len(h.Extra))
	for k := range h.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.field(k, fmt.Sprint(h.Extra[k]))
	}
	return nil
}

// Submitted writes the confirmation for a newly created log.
func (p *Printer) Submitted(v *mentor.LogView) error {
	if p.JSON() {
		return p.writeJSON(v)
	}
	p.printf("%s\n\n", p.style(p.heading, "Saved log for "+v.Record.LogDate.String()))
	if v.Extracted == nil {
		p.printf("%s\n", p.style(p.faint, "Nothing was extracted from this entry."))
		return nil
	}
	p.sections(v.Extracted)
	return nil
}
