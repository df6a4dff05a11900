package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/go-scripts/shortlist/internal/crawler"
	"github.com/go-scripts/shortlist/internal/detail"
	"github.com/go-scripts/shortlist/internal/progress"
	"github.com/go-scripts/shortlist/pkg/common"
	"github.com/go-scripts/shortlist/pkg/crawl"
	"github.com/go-scripts/shortlist/ui"
)

const defaultConfigFile = "config.yaml"

// Globals are the flags shared by every command
type Globals struct {
	ConfigFile    string        `help:"Path to configuration file" default:"config.yaml" name:"config" short:"c"`
	StartURL      string        `help:"Listing page to open" name:"url" short:"u"`
	ListingFile   string        `help:"Saved listing page to scrape instead of opening a browser"`
	OutputFile    string        `help:"Export file; .csv, .xlsx or .json" name:"output" short:"o"`
	Verbose       bool          `help:"Enable debug logging" short:"v"`
	Headful       bool          `help:"Show the browser window"`
	Progress      string        `help:"Progress display: log, bar or spinner"`
	PauseMin      time.Duration `help:"Shortest pause between detail pages"`
	PauseMax      time.Duration `help:"Longest pause between detail pages"`
	ExportPartial bool          `help:"Export the rows scraped so far when interrupted"`
}

// CLI flags structure
type CLI struct {
	Globals

	Expand ExpandCmd `cmd:"" aliases:"load" help:"Click through \"load more\" until the listing stops growing"`
	Scrape ScrapeCmd `cmd:"" help:"Scrape the entries currently listed and export them"`
	Run    RunCmd    `cmd:"" aliases:"both" help:"Expand the listing, then scrape and export it"`
}

type ExpandCmd struct {
	SaveListing string `help:"Write the expanded listing HTML to this file for a later scrape --listing-file"`
}

func (c *ExpandCmd) Run(g *Globals) error {
	return execute(g, crawler.ExpandList{}, c.SaveListing)
}

type ScrapeCmd struct{}

func (c *ScrapeCmd) Run(g *Globals) error {
	return execute(g, crawler.ScrapeOnly{}, "")
}

type RunCmd struct{}

func (c *RunCmd) Run(g *Globals) error {
	return execute(g, crawler.RunBoth{}, "")
}

func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "shortlist",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfiguration reads the config file and applies flag overrides
func loadConfiguration(g *Globals) (*common.Configuration, error) {
	config, err := common.LoadConfig(g.ConfigFile, g.ConfigFile != defaultConfigFile)
	if err != nil {
		return nil, err
	}

	// Override config with command line flags if provided
	if g.StartURL != "" {
		config.StartURL = g.StartURL
	}
	if g.ListingFile != "" {
		config.ListingFile = g.ListingFile
	}
	if g.OutputFile != "" {
		config.OutputFile = g.OutputFile
	}
	if g.Verbose {
		config.Verbose = true
	}
	if g.Headful {
		config.Headless = false
	}
	if g.Progress != "" {
		config.Progress = g.Progress
	}
	if g.PauseMin > 0 {
		config.PauseMin = g.PauseMin
		if config.PauseMax < g.PauseMin {
			config.PauseMax = g.PauseMin
		}
	}
	if g.PauseMax > 0 {
		config.PauseMax = g.PauseMax
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func execute(g *Globals, cmd crawler.Command, saveListing string) error {
	config, err := loadConfiguration(g)
	if err != nil {
		return err
	}
	logger := newLogger(config.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		listing crawler.ListingSource
		session *crawl.Session
	)
	switch {
	case config.ListingFile != "":
		listing, err = crawler.NewFileListing(config.ListingFile, config.StartURL)
		if err != nil {
			return err
		}
	case config.StartURL != "":
		session, err = crawl.NewSession(config, logger)
		if err != nil {
			return err
		}
		defer session.Close()
		if err := session.Open(ctx, config.StartURL); err != nil {
			return err
		}
		listing = session
	default:
		return fmt.Errorf("%w: either --url or --listing-file is required", common.ErrInvalidConfig)
	}

	var retriever detail.Retriever = detail.NewHTTPRetriever(detail.HTTPOptions{
		Timeout:              config.RequestTimeout,
		Retries:              config.Retries,
		UserAgent:            config.UserAgent,
		MaxRequestsPerSecond: config.MaxRequestsPerSecond,
	})
	if config.FetchViaBrowser && session != nil {
		retriever = session
	}

	reporter := progress.New(config.Progress, os.Stdout, logger)
	defer progress.Close(reporter)
	fetcher := detail.NewFetcher(retriever, crawler.DetailOptions(config), logger)
	c := crawler.New(config, listing, fetcher, reporter, logger)

	state, err := c.Execute(ctx, cmd)
	if errors.Is(err, crawler.ErrNoEntities) {
		logger.Warn(crawler.NoEntitiesAdvisory)
		return err
	}

	partial := false
	if err != nil && ctx.Err() != nil && state != nil && len(state.Records) > 0 && g.ExportPartial {
		if exportErr := c.Export(state); exportErr != nil {
			logger.Error("partial export failed", "err", exportErr)
		} else {
			partial = true
		}
	}

	if err == nil && saveListing != "" && session != nil {
		if err := saveExpandedListing(ctx, session, saveListing); err != nil {
			return err
		}
		logger.Info("listing saved", "path", saveListing)
	}

	if state != nil {
		fmt.Println(ui.RenderSummary(ui.Summary{
			Command:     cmd.String(),
			Rows:        len(state.Records),
			Failed:      state.Failed(),
			Count:       max(state.Expansion.Count, len(state.Links)),
			Activations: state.Expansion.Activations,
			Elapsed:     state.Elapsed(),
			OutputPath:  state.OutputPath,
			Partial:     partial,
		}))
	}
	return err
}

func saveExpandedListing(ctx context.Context, session *crawl.Session, path string) error {
	html, err := session.HTML(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

func main() {
	var cli CLI

	// Parse command line flags using kong
	ctx := kong.Parse(&cli,
		kong.Name("shortlist"),
		kong.Description("Collect a study-programme listing into a spreadsheet-ready shortlist."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
