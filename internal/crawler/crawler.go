package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/shortlist/internal/collector"
	"github.com/go-scripts/shortlist/internal/detail"
	"github.com/go-scripts/shortlist/internal/expander"
	"github.com/go-scripts/shortlist/internal/pipeline"
	"github.com/go-scripts/shortlist/internal/progress"
	"github.com/go-scripts/shortlist/internal/queue"
	"github.com/go-scripts/shortlist/internal/title"
	"github.com/go-scripts/shortlist/internal/types"
	"github.com/go-scripts/shortlist/internal/writer"
	"github.com/go-scripts/shortlist/pkg/common"
)

// NoEntitiesAdvisory is shown to the user when the listing yields nothing
const NoEntitiesAdvisory = "No courses found! Scroll down to load the list first."

var (
	// ErrNoEntities means the listing held no detail links; nothing is exported
	ErrNoEntities = errors.New("no courses found")
	// ErrNotExpandable means the listing source cannot drive a "load more" control
	ErrNotExpandable = errors.New("listing source cannot be expanded")
)

// RunState belongs to one invocation and is passed to each step
type RunState struct {
	Command    Command
	Started    time.Time
	Finished   time.Time
	Expanded   bool
	Expansion  types.ExpansionState
	Links      []types.EntityLink
	Records    []types.ScrapeRecord
	OutputPath string
}

func newRunState(cmd Command) *RunState {
	return &RunState{Command: cmd, Started: time.Now()}
}

// Failed counts records whose detail page could not be read
func (s *RunState) Failed() int {
	n := 0
	for _, r := range s.Records {
		if r.Failed {
			n++
		}
	}
	return n
}

// Elapsed returns the run duration, up to now while still running
func (s *RunState) Elapsed() time.Duration {
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}

// Crawler drives expansion, scraping and export for one listing
type Crawler struct {
	config    *common.Configuration
	listing   ListingSource
	page      expander.Page
	collector *collector.Collector
	parser    *title.Parser
	fetcher   pipeline.Fetcher
	exporter  *writer.Exporter
	reporter  progress.Reporter
	logger    *log.Logger
	sleep     pipeline.SleepFunc
}

// New creates a new Crawler. Expansion is available when listing also implements expander.Page.
func New(config *common.Configuration, listing ListingSource, fetcher pipeline.Fetcher, reporter progress.Reporter, logger *log.Logger) *Crawler {
	c := &Crawler{
		config:  config,
		listing: listing,
		collector: collector.New(collector.Options{
			DetailPattern:  config.DetailPattern,
			MinLabelLength: config.MinLabelLength,
		}),
		parser:   title.New(config.TitleSeparator, config.BoilerplateTokens),
		fetcher:  fetcher,
		exporter: writer.New(writer.Columns(config.ExtendedColumns, config.PresenceColumns)),
		reporter: reporter,
		logger:   logger,
	}
	if page, ok := listing.(expander.Page); ok {
		c.page = page
	}
	return c
}

// WithSleep replaces the pause used between detail fetches
func (c *Crawler) WithSleep(fn pipeline.SleepFunc) *Crawler {
	c.sleep = fn
	return c
}

// DetailOptions builds the Detail Fetcher settings from config
func DetailOptions(config *common.Configuration) detail.Options {
	return detail.Options{
		InstitutionSelector: config.InstitutionSelector,
		CitySelector:        config.CitySelector,
		CountrySuffix:       config.CountrySuffix,
		Fields:              detail.DefaultFields(config.SectionMaxLength),
	}
}

// Execute dispatches cmd to its entry point
func (c *Crawler) Execute(ctx context.Context, cmd Command) (*RunState, error) {
	switch cmd.(type) {
	case ExpandList:
		return c.Expand(ctx)
	case ScrapeOnly:
		return c.Scrape(ctx)
	case RunBoth:
		return c.Run(ctx)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCommand, cmd)
	}
}

// Expand loads the whole listing without scraping it
func (c *Crawler) Expand(ctx context.Context) (*RunState, error) {
	state := c.start(ExpandList{})
	defer c.finish(state)

	if c.page == nil {
		return state, ErrNotExpandable
	}
	return state, c.expand(ctx, state)
}

// Scrape collects the currently visible links, scrapes them and exports the records
func (c *Crawler) Scrape(ctx context.Context) (*RunState, error) {
	state := c.start(ScrapeOnly{})
	defer c.finish(state)

	return state, c.scrape(ctx, state)
}

// Run expands the listing to convergence and then scrapes it
func (c *Crawler) Run(ctx context.Context) (*RunState, error) {
	state := c.start(RunBoth{})
	defer c.finish(state)

	if c.page == nil {
		c.logger.Warn("listing cannot be expanded, scraping as is")
	} else if err := c.expand(ctx, state); err != nil {
		return state, err
	}
	return state, c.scrape(ctx, state)
}

// Export writes the records held by state to the configured output file
func (c *Crawler) Export(state *RunState) error {
	if err := c.exporter.Export(c.config.OutputFile, state.Records); err != nil {
		return err
	}
	state.OutputPath = c.config.OutputFile
	c.logger.Info("export written", "path", state.OutputPath, "rows", len(state.Records))
	return nil
}

func (c *Crawler) start(cmd Command) *RunState {
	c.logger.Debug("run started", "command", cmd)
	c.reporter.Notify(progress.Event{Phase: progress.PhaseStart})
	return newRunState(cmd)
}

func (c *Crawler) finish(state *RunState) {
	state.Finished = time.Now()
}

func (c *Crawler) expand(ctx context.Context, state *RunState) error {
	exp := expander.New(c.page, expander.Options{
		Vocabulary:     c.config.ExpandVocabulary,
		Timeout:        c.config.ExpandTimeout,
		MaxActivations: c.config.MaxActivations,
	}, c.logger)

	st, err := exp.Expand(ctx)
	state.Expansion = st
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}
	state.Expanded = true

	c.reporter.Notify(progress.Event{Phase: progress.PhaseExpansionComplete, Total: st.Count})
	return nil
}

func (c *Crawler) scrape(ctx context.Context, state *RunState) error {
	html, err := c.listing.HTML(ctx)
	if err != nil {
		return err
	}

	links, err := c.collector.CollectHTML(html, c.listing.BaseURL())
	if err != nil {
		return err
	}
	if len(links) == 0 {
		return ErrNoEntities
	}
	state.Links = links
	c.logger.Info("links collected", "count", len(links))

	p := pipeline.New(c.fetcher, c.parser, c.reporter, pipeline.Options{
		PauseMin:           c.config.PauseMin,
		PauseMax:           c.config.PauseMax,
		MinPlausibleLength: c.config.MinPlausibleLength,
	}, c.logger)
	if c.sleep != nil {
		p.WithSleep(c.sleep)
	}

	records, err := p.Run(ctx, queue.New(links))
	state.Records = records
	if err != nil {
		return fmt.Errorf("scrape interrupted after %d of %d: %w", len(records), len(links), err)
	}

	c.reporter.Notify(progress.Event{Phase: progress.PhaseScrapeComplete, Index: len(records), Total: len(records)})
	return c.Export(state)
}
