package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

// BarReporter renders a single-line progress bar
type BarReporter struct {
	bar       progress.Model
	w         io.Writer
	total     int
	processed int
	lastLabel string
	mu        sync.Mutex
}

// NewBarReporter creates a new BarReporter
func NewBarReporter(w io.Writer) *BarReporter {
	return &BarReporter{
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		w:   w,
	}
}

func (b *BarReporter) Notify(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch e.Phase {
	case PhaseStart:
		fmt.Fprintln(b.w, "Scraper started...")
	case PhaseExpansionComplete:
		fmt.Fprintf(b.w, "List expanded: %d entries\n", e.Total)
	case PhaseItem:
		b.total = e.Total
		b.processed = e.Index
		b.lastLabel = e.Label
		fmt.Fprintf(b.w, "\r%s %d/%d %s", b.bar.ViewAs(b.fraction()), b.processed, b.total, truncateLabel(b.lastLabel, 40))
	case PhaseScrapeComplete:
		fmt.Fprintf(b.w, "\r%s %d/%d done\n", b.bar.ViewAs(1), e.Total, e.Total)
	}
}

// Fraction returns the share of processed items
func (b *BarReporter) Fraction() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fraction()
}

func (b *BarReporter) fraction() float64 {
	if b.total == 0 {
		return 0
	}
	return float64(b.processed) / float64(b.total)
}

func truncateLabel(label string, max int) string {
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	return string(runes[:max-3]) + "..."
}
