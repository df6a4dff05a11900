package main

import (
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-scripts/shortlist/pkg/common"
)

func parseArgs(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("shortlist"))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestConfigFlag(t *testing.T) {
	cli, ctx := parseArgs(t, "--config", "custom.yaml", "scrape")
	assert.Equal(t, "custom.yaml", cli.ConfigFile)
	assert.Equal(t, "scrape", ctx.Command())

	cli, _ = parseArgs(t, "-c", "short.yaml", "run")
	assert.Equal(t, "short.yaml", cli.ConfigFile)

	cli, _ = parseArgs(t, "expand")
	assert.Equal(t, defaultConfigFile, cli.ConfigFile)
}

func TestCommandAliases(t *testing.T) {
	_, ctx := parseArgs(t, "load", "--save-listing", "listing.html")
	assert.Equal(t, "expand", ctx.Command())

	_, ctx = parseArgs(t, "both")
	assert.Equal(t, "run", ctx.Command())
}

func TestLoadConfigurationOverrides(t *testing.T) {
	cli, _ := parseArgs(t,
		"--url", "https://example.org/search",
		"--output", "out.xlsx",
		"--headful",
		"--progress", common.ProgressBar,
		"--pause-min", "3s",
		"scrape",
	)

	config, err := loadConfiguration(&cli.Globals)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/search", config.StartURL)
	assert.Equal(t, "out.xlsx", config.OutputFile)
	assert.False(t, config.Headless)
	assert.Equal(t, common.ProgressBar, config.Progress)
	assert.Equal(t, 3*time.Second, config.PauseMin)
	assert.Equal(t, 3*time.Second, config.PauseMax)
}

func TestLoadConfigurationRejectsMissingExplicitFile(t *testing.T) {
	cli, _ := parseArgs(t, "--config", "does-not-exist.yaml", "scrape")
	_, err := loadConfiguration(&cli.Globals)
	assert.Error(t, err)
}
