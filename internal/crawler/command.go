package crawler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned for a command name ParseCommand does not know
var ErrUnknownCommand = errors.New("unknown command")

// Command selects what a run does. The variants are ExpandList, ScrapeOnly and RunBoth.
type Command interface {
	fmt.Stringer
	command()
}

// ExpandList clicks "load more" until the listing converges
type ExpandList struct{}

// ScrapeOnly scrapes whatever the listing currently shows
type ScrapeOnly struct{}

// RunBoth expands to convergence, then scrapes
type RunBoth struct{}

func (ExpandList) command() {}
func (ScrapeOnly) command() {}
func (RunBoth) command()    {}

func (ExpandList) String() string { return "expand" }
func (ScrapeOnly) String() string { return "scrape" }
func (RunBoth) String() string    { return "run" }

// ParseCommand maps a command name to its variant
func ParseCommand(name string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "expand", "load":
		return ExpandList{}, nil
	case "scrape":
		return ScrapeOnly{}, nil
	case "run", "both":
		return RunBoth{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}
