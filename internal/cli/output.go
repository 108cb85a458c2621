// Package cli renders normalized results for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat parses "text" or "json".
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

const defaultWidth = 80

// Printer writes results to w in one format.
type Printer struct {
	w      io.Writer
	format OutputFormat
	styled bool
	width  int
	now    func() time.Time

	heading lipgloss.Style
	label   lipgloss.Style
	faint   lipgloss.Style
	bad     lipgloss.Style
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithStyle enables colors and rendered markdown. Use it only for terminals.
func WithStyle(on bool) PrinterOption {
	return func(p *Printer) { p.styled = on }
}

// WithWidth sets the wrap width for rendered prose.
func WithWidth(n int) PrinterOption {
	return func(p *Printer) {
		if n > 0 {
			p.width = n
		}
	}
}

// WithClock sets the time used for relative timestamps.
func WithClock(now func() time.Time) PrinterOption {
	return func(p *Printer) { p.now = now }
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer, format OutputFormat, opts ...PrinterOption) *Printer {
	p := &Printer{
		w:       w,
		format:  format,
		width:   defaultWidth,
		now:     time.Now,
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   lipgloss.NewStyle().Bold(true),
		faint:   lipgloss.NewStyle().Faint(true),
		bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// JSON reports whether the printer emits JSON.
func (p *Printer) JSON() bool {
	return p.format == OutputJSON
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) writeJSONLine(v any) error {
	return json.NewEncoder(p.w).Encode(v)
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// prose writes backend prose, rendered as markdown when styled.
func (p *Printer) prose(text string) {
	text = strings.TrimSpace(text)
	if p.styled {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(p.width))
		if err == nil {
			if out, err := r.Render(text); err == nil {
				p.printf("%s", out)
				return
			}
		}
	}
	p.printf("%s\n", text)
}

func (p *Printer) field(name, value string) {
	if value == "" {
		p.printf("%s\n", p.style(p.label, name+":"))
		return
	}
	p.printf("%s %s\n", p.style(p.label, name+":"), value)
}

// Error writes a failure message for the user.
func (p *Printer) Error(err error) {
	if p.JSON() {
		_ = p.writeJSON(map[string]string{"error": err.Error()})
		return
	}
	p.printf("%s %s\n", p.style(p.bad, "Error:"), err.Error())
}
