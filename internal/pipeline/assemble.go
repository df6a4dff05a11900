package pipeline

import (
	"maps"
	"unicode/utf8"

	"github.com/go-scripts/shortlist/internal/types"
)

// Assemble merges a parsed title with the fields read from the detail page.
// Title values win unless they are missing or shorter than minPlausible runes.
// A failed fetch always carries the error marker as its organization.
func Assemble(parsed types.ParsedTitle, fields types.ExtractedFields, minPlausible int) types.ScrapeRecord {
	rec := types.ScrapeRecord{
		Name:         orNotAvailable(parsed.Name),
		Organization: pick(parsed.Organization, fields.Organization, minPlausible),
		Location:     pick(parsed.Location, fields.Location, minPlausible),
		Values:       maps.Clone(fields.Values),
		Link:         fields.Link,
		Failed:       fields.Failed,
	}
	if rec.Values == nil {
		rec.Values = map[types.Field]string{}
	}
	if fields.Failed {
		rec.Organization = types.ErrorMarker
	}
	return rec
}

func pick(fromTitle, fromDetail string, minPlausible int) string {
	if fromTitle == "" || fromTitle == types.NotAvailable || utf8.RuneCountInString(fromTitle) < minPlausible {
		return orNotAvailable(fromDetail)
	}
	return fromTitle
}

func orNotAvailable(s string) string {
	if s == "" {
		return types.NotAvailable
	}
	return s
}
