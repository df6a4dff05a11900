package detail

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// Values produced by presence scans
const (
	Mentioned    = "Mentioned"
	NotMentioned = "Not mentioned"
)

// Strategy is one technique for locating a field's value in a detail document
type Strategy interface {
	Name() string
	// Extract returns the cleaned value and whether the strategy found one
	Extract(doc *Document, fs FieldSpec) (string, bool)
}

// DefinitionList looks for a <dt> whose text contains a keyword and returns the
// following definition element.
type DefinitionList struct{}

func (DefinitionList) Name() string { return "definition-list" }

func (DefinitionList) Extract(doc *Document, fs FieldSpec) (string, bool) {
	var value string
	doc.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		if !containsAny(dt.Text(), fs.Keywords) {
			return true
		}
		value = Clean(dt.Next().Text())
		return value == ""
	})
	return value, value != ""
}

// HeadingProximity looks for a heading whose text contains a keyword and returns
// the next sibling element, unwrapping a single wrapper level.
type HeadingProximity struct{}

func (HeadingProximity) Name() string { return "heading-proximity" }

func (HeadingProximity) Extract(doc *Document, fs FieldSpec) (string, bool) {
	var value string
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !containsAny(h.Text(), fs.Keywords) {
			return true
		}
		value = Clean(unwrap(h.Next()).Text())
		return value == ""
	})
	return value, value != ""
}

var wrapperTags = map[string]bool{"div": true, "section": true, "article": true, "span": true}

// unwrap descends one level when sel is a bare wrapper around a single element.
func unwrap(sel *goquery.Selection) *goquery.Selection {
	if sel.Length() == 0 || !wrapperTags[goquery.NodeName(sel)] {
		return sel
	}
	children := sel.Children()
	if children.Length() != 1 {
		return sel
	}
	if Clean(sel.Text()) != Clean(children.Text()) {
		// the wrapper carries text of its own
		return sel
	}
	return children
}

// RegexPresence reports whether Pattern occurs anywhere in the visible text.
// It always succeeds; the value is Mentioned or NotMentioned.
type RegexPresence struct {
	Pattern *regexp.Regexp
}

func (RegexPresence) Name() string { return "regex-presence" }

func (r RegexPresence) Extract(doc *Document, _ FieldSpec) (string, bool) {
	if r.Pattern.MatchString(doc.VisibleText()) {
		return Mentioned, true
	}
	return NotMentioned, true
}
