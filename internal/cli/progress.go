package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/tapesort/internal/engine"
)

var (
	phaseStyle   = lipgloss.NewStyle().Bold(true)
	percentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// progressPrinter renders engine progress as a single rewritten
// terminal line per phase, with a heading when the phase changes.
type progressPrinter struct {
	w       io.Writer
	phase   engine.Phase
	started bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w}
}

// update implements engine.Progress.
func (p *progressPrinter) update(phase engine.Phase, done, total uint64) {
	if !p.started || phase != p.phase {
		if p.started {
			fmt.Fprintln(p.w)
		}
		heading := "Reading tape..."
		if phase == engine.PhaseMerge {
			heading = "Sorting..."
		}
		fmt.Fprintln(p.w, phaseStyle.Render(heading))
		p.phase = phase
		p.started = true
	}
	percent := float64(done) / float64(total) * 100
	fmt.Fprintf(p.w, "\r\x1b[2KProgress: %s (%s)",
		percentStyle.Render(fmt.Sprintf("%6.2f%%", percent)),
		countStyle.Render(fmt.Sprintf("%d/%d", done, total)))
}

// finish terminates the in-place progress line, if any was drawn.
func (p *progressPrinter) finish() {
	if p.started {
		fmt.Fprintln(p.w)
		p.started = false
	}
}
