// Package render styles mcpm reports for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexshd/mcpm"
)

// Palette
var (
	colorHeader   = lipgloss.Color("#5B8DEF")
	colorPositive = lipgloss.Color("#8BC34A")
	colorNegative = lipgloss.Color("#E53935")
	colorWarning  = lipgloss.Color("#FFC107")
	colorMuted    = lipgloss.Color("#AAAAAA")
	colorBorder   = lipgloss.Color("#444444")
)

// Renderer writes styled reports to w.
// Color support is detected from w; NoColor forces plain text.
type Renderer struct {
	w       io.Writer
	noColor bool

	header   lipgloss.Style
	positive lipgloss.Style
	negative lipgloss.Style
	warning  lipgloss.Style
	muted    lipgloss.Style
	box      lipgloss.Style
}

// New creates a Renderer for w.
func New(w io.Writer, noColor bool) *Renderer {
	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		w:        w,
		noColor:  noColor,
		header:   lr.NewStyle().Bold(true).Foreground(colorHeader),
		positive: lr.NewStyle().Foreground(colorPositive),
		negative: lr.NewStyle().Bold(true).Foreground(colorNegative),
		warning:  lr.NewStyle().Foreground(colorWarning),
		muted:    lr.NewStyle().Foreground(colorMuted),
		box:      lr.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.noColor {
		return text
	}
	return s.Render(text)
}

// Header writes a boxed section title.
func (r *Renderer) Header(title string) {
	if r.noColor {
		rule := strings.Repeat("=", 70)
		fmt.Fprintf(r.w, "%s\n%s\n%s\n", rule, title, rule)
		return
	}
	fmt.Fprintln(r.w, r.box.Render(r.header.Render(title)))
}

// Text writes a block of pre-rendered text unchanged.
func (r *Renderer) Text(text string) {
	fmt.Fprintln(r.w, text)
}

// Note writes a muted line.
func (r *Renderer) Note(text string) {
	fmt.Fprintln(r.w, r.style(r.muted, text))
}

// Coherence formats M(S) colored by sign.
func (r *Renderer) Coherence(ms float64) string {
	text := fmt.Sprintf("%.3f", ms)
	if ms < 0 {
		return r.style(r.negative, text)
	}
	return r.style(r.positive, text)
}

// Breakdown writes the factor decomposition of one state.
func (r *Renderer) Breakdown(name string, b mcpm.StateBreakdown) {
	fmt.Fprintln(r.w, r.style(r.header, name))
	fmt.Fprintf(r.w, "  R_e=%.3f  A=%.3f  D=%.3f  f(C)=%.4f  L=%.3f\n",
		b.Resonance, b.Adaptability, b.Diversity, b.CouplingFactor, b.LossRate)
	fmt.Fprintf(r.w, "  gain=%.4f  M(S)=%s\n", b.Gain, r.Coherence(b.Coherence))
}

// Ranking writes a pattern ranking table.
func (r *Renderer) Ranking(ranking []mcpm.RankEntry) {
	for _, e := range ranking {
		fmt.Fprintf(r.w, "  %d. %-22s %s\n", e.Rank, e.Name, r.Coherence(e.Coherence))
	}
}

// Verdict writes a replacement verdict line.
func (r *Renderer) Verdict(v mcpm.Verdict) {
	s := r.warning
	switch v {
	case mcpm.VerdictSuperior, mcpm.VerdictFavorable:
		s = r.positive
	case mcpm.VerdictWorse:
		s = r.negative
	}
	fmt.Fprintf(r.w, "Verdict: %s (%s)\n", r.style(s, string(v)), v.Explain())
}

// Flags writes ethical flags, most severe styling first.
func (r *Renderer) Flags(flags []mcpm.EthicalFlag) {
	if len(flags) == 0 {
		fmt.Fprintln(r.w, r.style(r.positive, "No ethical flags raised."))
		return
	}
	for _, f := range flags {
		s := r.warning
		if f.Severity == mcpm.SeverityCritical || f.Severity == mcpm.SeverityHigh {
			s = r.negative
		}
		fmt.Fprintf(r.w, "  %s %s\n", r.style(s, "["+string(f.Severity)+"]"), f.Code)
		fmt.Fprintf(r.w, "    %s\n", f.Description)
		fmt.Fprintf(r.w, "    %s\n", r.style(r.muted, "Note: "+f.Note))
	}
}

// Cycle writes one simulation cycle.
func (r *Renderer) Cycle(c mcpm.CycleReport) {
	mark := r.style(r.negative, "✗")
	if c.Expanded {
		mark = r.style(r.positive, "✓")
	}
	fmt.Fprintf(r.w, "Cycle %2d %s %s\n", c.Cycle, mark, c.Message)
	if c.Violated {
		repair := r.style(r.negative, "repair failed")
		if c.Repaired {
			repair = r.style(r.positive, "repaired")
		}
		fmt.Fprintf(r.w, "         %s, %s\n", r.style(r.warning, "violation"), repair)
	}
	fmt.Fprintf(r.w, "         %s\n", r.style(r.muted, fmt.Sprintf("state=%s trust=%.3f joy=%.3f",
		c.Status.State, c.Status.TotalTrust, c.Status.TotalJoy)))
}
