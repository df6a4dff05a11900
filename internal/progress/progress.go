package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/shortlist/pkg/common"
)

// Phase identifies what a progress event reports
type Phase int

const (
	PhaseStart Phase = iota
	PhaseExpansionComplete
	PhaseItem
	PhaseScrapeComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseExpansionComplete:
		return "expansion-complete"
	case PhaseItem:
		return "item"
	case PhaseScrapeComplete:
		return "scrape-complete"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Event is pushed once per processed entity and at phase transitions.
// Index is 1-based.
type Event struct {
	Phase Phase
	Index int
	Total int
	Label string
}

// Reporter consumes progress events
type Reporter interface {
	Notify(Event)
}

// New returns the reporter selected by name
func New(name string, w io.Writer, logger *log.Logger) Reporter {
	switch name {
	case common.ProgressBar:
		return NewBarReporter(w)
	case common.ProgressSpinner:
		return NewSpinnerReporter(w)
	default:
		return NewLogReporter(logger)
	}
}

// Close releases reporters that hold terminal state, such as a running spinner
func Close(r Reporter) {
	if c, ok := r.(interface{ Close() }); ok {
		c.Close()
	}
}

// LogReporter writes events as structured log lines
type LogReporter struct {
	logger *log.Logger
}

// NewLogReporter creates a new LogReporter
func NewLogReporter(logger *log.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Notify(e Event) {
	switch e.Phase {
	case PhaseItem:
		r.logger.Info(fmt.Sprintf("Scraping: %d / %d", e.Index, e.Total), "title", e.Label)
	case PhaseExpansionComplete:
		r.logger.Info("list expanded", "count", e.Total)
	case PhaseScrapeComplete:
		r.logger.Info("scrape complete", "rows", e.Total)
	default:
		r.logger.Info("scraper started")
	}
}

// Recorder keeps every event it receives
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
