package detail

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
)

var lineBreaks = regexp.MustCompile(`\r\n|\r|\n`)

// Clean collapses line breaks and whitespace runs to single spaces and replaces
// commas with semicolons so values never carry the record delimiter.
func Clean(s string) string {
	s = lineBreaks.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ";"))
}

// Document is a parsed detail page
type Document struct {
	*goquery.Document
	text *string
}

// NewDocument parses a detail page body
func NewDocument(body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail page: %w", err)
	}
	return &Document{Document: doc}, nil
}

// VisibleText returns the page text without script and style content.
func (d *Document) VisibleText() string {
	if d.text == nil {
		body := d.Find("body").Clone()
		body.Find("script, style, noscript, template").Remove()
		text := strings.Join(strings.Fields(body.Text()), " ")
		d.text = &text
	}
	return *d.text
}

// containsAny reports whether text contains one of keywords, ignoring case.
func containsAny(text string, keywords []string) bool {
	folded := cases.Fold().String(text)
	for _, k := range keywords {
		if strings.Contains(folded, cases.Fold().String(k)) {
			return true
		}
	}
	return false
}
