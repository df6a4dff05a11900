package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Summary is the end-of-run report
type Summary struct {
	Command     string
	Rows        int
	Failed      int
	Count       int
	Activations int
	Elapsed     time.Duration
	OutputPath  string
	// Partial marks a run that was interrupted before every entity was scraped
	Partial bool
}

// RenderSummary draws the summary as a bordered panel
func RenderSummary(s Summary) string {
	stats := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{"Command", s.Command, valueStyle},
		{"Listed", fmt.Sprintf("%d entries", s.Count), valueStyle},
		{"Activations", fmt.Sprintf("%d", s.Activations), valueStyle},
		{"Rows", fmt.Sprintf("%d", s.Rows), valueStyle},
		{"Failed", fmt.Sprintf("%d", s.Failed), failedStyle(s.Failed)},
		{"Elapsed", formatElapsedTime(s.Elapsed), valueStyle},
		{"Output", outputValue(s.OutputPath), valueStyle},
	}

	width := 0
	for _, stat := range stats {
		width = max(width, len(stat.label)+1)
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("Shortlist Summary") + "\n\n")
	for _, stat := range stats {
		content.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, stat.label+":")))
		content.WriteString(" " + stat.style.Render(stat.value) + "\n")
	}
	if s.Partial {
		content.WriteString("\n" + warningStyle.Render("Run interrupted, export holds partial results"))
	}

	return borderStyle.Render(strings.TrimSuffix(content.String(), "\n"))
}

func failedStyle(n int) lipgloss.Style {
	if n > 0 {
		return errorStyle
	}
	return valueStyle
}

func outputValue(path string) string {
	if path == "" {
		return "not written"
	}
	return path
}

func formatElapsedTime(elapsed time.Duration) string {
	return fmt.Sprintf("%02d:%02d:%02d",
		int(elapsed.Hours()),
		int(elapsed.Minutes())%60,
		int(elapsed.Seconds())%60,
	)
}
