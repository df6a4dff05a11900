package pipeline

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/shortlist/internal/progress"
	"github.com/go-scripts/shortlist/internal/queue"
	"github.com/go-scripts/shortlist/internal/types"
)

// Fetcher reads one detail document. It reports failures inside the result.
type Fetcher interface {
	Fetch(ctx context.Context, link string) types.ExtractedFields
}

// TitleParser splits a listing label
type TitleParser interface {
	Parse(raw string) types.ParsedTitle
}

// SleepFunc pauses for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options configures pacing and merging
type Options struct {
	// PauseMin and PauseMax bound the pause between items; equal values give a fixed pause
	PauseMin           time.Duration
	PauseMax           time.Duration
	MinPlausibleLength int
}

// Pipeline visits every queued entity one at a time with a pause between fetches
type Pipeline struct {
	fetcher  Fetcher
	parser   TitleParser
	reporter progress.Reporter
	opts     Options
	logger   *log.Logger
	sleep    SleepFunc
}

// New creates a new Pipeline
func New(fetcher Fetcher, parser TitleParser, reporter progress.Reporter, opts Options, logger *log.Logger) *Pipeline {
	return &Pipeline{
		fetcher:  fetcher,
		parser:   parser,
		reporter: reporter,
		opts:     opts,
		logger:   logger,
		sleep:    sleepContext,
	}
}

// WithSleep replaces the pause implementation
func (p *Pipeline) WithSleep(fn SleepFunc) *Pipeline {
	p.sleep = fn
	return p
}

// Run drains q in discovery order. On cancellation it returns the records finished so far
// together with the context error.
func (p *Pipeline) Run(ctx context.Context, q *queue.Queue) ([]types.ScrapeRecord, error) {
	total := q.Total()
	slots := make([]types.ScrapeRecord, total)
	filled := make([]bool, total)

	collect := func() []types.ScrapeRecord {
		out := make([]types.ScrapeRecord, 0, total)
		for i, ok := range filled {
			if ok {
				out = append(out, slots[i])
			}
		}
		return out
	}

	first := true
	for {
		task, ok := q.Next()
		if !ok {
			break
		}

		if !first {
			if err := p.sleep(ctx, p.pause()); err != nil {
				return collect(), err
			}
		}
		first = false

		if err := ctx.Err(); err != nil {
			return collect(), err
		}

		p.reporter.Notify(progress.Event{
			Phase: progress.PhaseItem,
			Index: task.Index + 1,
			Total: total,
			Label: task.Link.Label,
		})

		parsed := p.parser.Parse(task.Link.Label)
		fields := p.fetcher.Fetch(ctx, task.Link.Identifier)
		if fields.Failed && ctx.Err() != nil {
			return collect(), ctx.Err()
		}
		if fields.Link == "" {
			fields.Link = task.Link.Identifier
		}

		slots[task.Index] = Assemble(parsed, fields, p.opts.MinPlausibleLength)
		filled[task.Index] = true
		p.logger.Debug("entity assembled", "index", task.Index+1, "failed", fields.Failed)
	}

	return collect(), nil
}

func (p *Pipeline) pause() time.Duration {
	spread := p.opts.PauseMax - p.opts.PauseMin
	if spread <= 0 {
		return p.opts.PauseMin
	}
	return p.opts.PauseMin + rand.N(spread+1)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
