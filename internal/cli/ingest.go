package cli

import (
	"path/filepath"

	"github.com/hyperjump/internai/internal/mentor"
	"github.com/hyperjump/internai/internal/watcher"
)

type ingestRecord struct {
	Path    string          `json:"path"`
	Date    string          `json:"date,omitempty"`
	Outcome watcher.Outcome `json:"outcome"`
	Log     *mentor.LogView `json:"log,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Ingested writes one line per journal file the watcher handled. JSON output is one
// object per line.
func (p *Printer) Ingested(r watcher.Result) error {
	if p.JSON() {
		rec := ingestRecord{Path: r.Path, Outcome: r.Outcome, Log: r.View}
		if !r.Date.IsZero() {
			rec.Date = r.Date.String()
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		}
		return p.writeJSONLine(rec)
	}
	line := filepath.Base(r.Path) + " " + string(r.Outcome)
	switch {
	case r.Err != nil:
		p.printf("%s: %s\n", p.style(p.bad, line), r.Err.Error())
	case r.Outcome == watcher.Submitted:
		p.printf("%s\n", p.style(p.heading, line))
	default:
		p.printf("%s\n", p.style(p.faint, line))
	}
	return nil
}
