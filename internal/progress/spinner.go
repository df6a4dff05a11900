package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerReporter shows the current item next to a terminal spinner
type SpinnerReporter struct {
	s *spinner.Spinner
	w io.Writer
}

// NewSpinnerReporter creates a new SpinnerReporter
func NewSpinnerReporter(w io.Writer) *SpinnerReporter {
	return &SpinnerReporter{
		s: spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w)),
		w: w,
	}
}

func (r *SpinnerReporter) Notify(e Event) {
	switch e.Phase {
	case PhaseStart:
		r.s.Suffix = " Scraper started..."
		r.s.Start()
	case PhaseExpansionComplete:
		r.s.Suffix = fmt.Sprintf(" List expanded: %d entries", e.Total)
	case PhaseItem:
		r.s.Suffix = fmt.Sprintf(" [%d/%d] %s", e.Index, e.Total, truncateLabel(e.Label, 50))
		if !r.s.Active() {
			r.s.Start()
		}
	case PhaseScrapeComplete:
		r.s.FinalMSG = fmt.Sprintf("Scraped %d entries\n", e.Total)
		r.s.Stop()
	}
}

// Close stops the spinner if a run ended before scrape completion
func (r *SpinnerReporter) Close() {
	if r.s.Active() {
		r.s.Stop()
	}
}
