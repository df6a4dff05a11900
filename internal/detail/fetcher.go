package detail

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/shortlist/internal/types"
)

// Options configures a Fetcher
type Options struct {
	InstitutionSelector string
	CitySelector        string
	// CountrySuffix is stripped from the end of the city header
	CountrySuffix string
	Fields        []FieldSpec
}

// Fetcher retrieves a detail document per link and extracts the field table from it.
// It holds no per-link state, so calls are independent of each other.
type Fetcher struct {
	retriever Retriever
	opts      Options
	country   *regexp.Regexp
	logger    *log.Logger
}

// NewFetcher creates a new Fetcher
func NewFetcher(retriever Retriever, opts Options, logger *log.Logger) *Fetcher {
	f := &Fetcher{
		retriever: retriever,
		opts:      opts,
		logger:    logger,
	}
	if suffix := strings.TrimSpace(opts.CountrySuffix); suffix != "" {
		f.country = regexp.MustCompile(`(?i)[\s;,\-–]*\b` + regexp.QuoteMeta(suffix) + `\s*$`)
	}
	return f
}

// Fetch never fails: a transport failure yields the error variant of ExtractedFields.
func (f *Fetcher) Fetch(ctx context.Context, link string) types.ExtractedFields {
	body, err := f.retriever.Retrieve(ctx, link)
	if err != nil {
		f.logger.Warn("detail fetch failed", "url", link, "err", err)
		return types.NewFailedFields(link, err)
	}

	doc, err := NewDocument(body)
	if err != nil {
		f.logger.Warn("detail parse failed", "url", link, "err", err)
		return types.NewFailedFields(link, err)
	}
	return f.Extract(doc, link)
}

// Extract runs the field table against an already parsed document
func (f *Fetcher) Extract(doc *Document, link string) types.ExtractedFields {
	fields := types.ExtractedFields{
		Organization: f.header(doc, f.opts.InstitutionSelector),
		Location:     f.header(doc, f.opts.CitySelector),
		Values:       make(map[types.Field]string, len(f.opts.Fields)),
		Link:         link,
	}
	if f.country != nil && fields.Location != types.NotAvailable {
		fields.Location = strings.TrimSpace(f.country.ReplaceAllString(fields.Location, ""))
		if fields.Location == "" {
			fields.Location = types.NotAvailable
		}
	}

	for _, fs := range f.opts.Fields {
		value, ok := extractField(doc, fs)
		if !ok {
			f.logger.Debug("field not found", "field", fs.Field, "url", link)
			continue
		}
		fields.Values[fs.Field] = value
	}
	return fields
}

// extractField tries the field's strategies in order; the first success wins.
func extractField(doc *Document, fs FieldSpec) (string, bool) {
	for _, strategy := range fs.Strategies {
		value, ok := strategy.Extract(doc, fs)
		if !ok {
			continue
		}
		return truncate(value, fs.MaxLength), true
	}
	return "", false
}

func (f *Fetcher) header(doc *Document, selector string) string {
	if selector == "" {
		return types.NotAvailable
	}
	if v := Clean(doc.Find(selector).First().Text()); v != "" {
		return v
	}
	return types.NotAvailable
}

func truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max])) + "..."
}
