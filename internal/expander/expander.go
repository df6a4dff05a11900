package expander

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/shortlist/internal/types"
)

// Page is the live listing the expander drives
type Page interface {
	// AnchorCount returns the number of rendered detail anchors
	AnchorCount(ctx context.Context) (int, error)
	ScrollToBottom(ctx context.Context) error
	// ActivateExpandControl clicks one visible control whose text matches the vocabulary.
	// It reports false when no such control exists.
	ActivateExpandControl(ctx context.Context, vocabulary []string) (bool, error)
	// WaitForGrowth blocks until the anchor count exceeds baseline or timeout elapses.
	WaitForGrowth(ctx context.Context, baseline int, timeout time.Duration) (int, bool, error)
}

// State is a step of the expansion loop
type State int

const (
	Scanning State = iota
	Activating
	Converged
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Activating:
		return "activating"
	case Converged:
		return "converged"
	default:
		return "unknown"
	}
}

// Options configures the expansion loop
type Options struct {
	Vocabulary []string
	Timeout    time.Duration
	// MaxActivations caps the number of clicks; 0 means no cap
	MaxActivations int
}

// Expander clicks "load more" until the listing stops growing
type Expander struct {
	page   Page
	opts   Options
	logger *log.Logger
}

// New creates a new Expander
func New(page Page, opts Options, logger *log.Logger) *Expander {
	return &Expander{page: page, opts: opts, logger: logger}
}

// Expand runs the loop to convergence and reports the final count and number of activations.
// A wait that times out without growth is convergence, not an error.
func (e *Expander) Expand(ctx context.Context) (types.ExpansionState, error) {
	var st types.ExpansionState
	state := Scanning

	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		switch state {
		case Scanning:
			n, err := e.page.AnchorCount(ctx)
			if err != nil {
				return st, fmt.Errorf("failed to count anchors: %w", err)
			}
			st.Count = n
			if err := e.page.ScrollToBottom(ctx); err != nil {
				return st, fmt.Errorf("failed to scroll: %w", err)
			}
			state = Activating

		case Activating:
			if e.opts.MaxActivations > 0 && st.Activations >= e.opts.MaxActivations {
				e.logger.Debug("activation limit reached", "limit", e.opts.MaxActivations)
				state = Converged
				continue
			}

			found, err := e.page.ActivateExpandControl(ctx, e.opts.Vocabulary)
			if err != nil {
				return st, fmt.Errorf("failed to activate expand control: %w", err)
			}
			if !found {
				e.logger.Debug("no expand control visible", "count", st.Count)
				state = Converged
				continue
			}
			st.Activations++

			count, grew, err := e.page.WaitForGrowth(ctx, st.Count, e.opts.Timeout)
			if err != nil {
				return st, fmt.Errorf("failed waiting for new entries: %w", err)
			}
			if !grew {
				e.logger.Debug("no growth before timeout", "count", count, "timeout", e.opts.Timeout)
				state = Converged
				continue
			}
			e.logger.Debug("list grew", "from", st.Count, "to", count, "activations", st.Activations)
			st.Count = count
			state = Scanning

		case Converged:
			e.logger.Info("expansion converged", "count", st.Count, "activations", st.Activations)
			return st, nil
		}
	}
}
