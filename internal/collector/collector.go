package collector

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/net/html"

	"github.com/go-scripts/shortlist/internal/types"
)

// Options controls which anchors count as entity links
type Options struct {
	// DetailPattern is a substring every detail href contains
	DetailPattern string
	// MinLabelLength excludes anchors with shorter visible text (icon links)
	MinLabelLength int
}

// Collector scans a listing document for entity-detail links
type Collector struct {
	opts Options
}

// New creates a new Collector
func New(opts Options) *Collector {
	return &Collector{opts: opts}
}

// CollectHTML parses raw listing markup and collects its links
func (c *Collector) CollectHTML(raw string, base *url.URL) ([]types.EntityLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}
	return c.Collect(doc, base), nil
}

// Collect returns one link per canonical identifier in first-seen order. When the
// same identifier appears more than once the longest label is kept.
func (c *Collector) Collect(doc *goquery.Document, base *url.URL) []types.EntityLink {
	labels := orderedmap.New[string, string]()

	c.anchors(doc).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id, ok := Canonicalize(base, href)
		if !ok {
			return
		}

		label := VisibleText(a)
		if utf8.RuneCountInString(label) < c.opts.MinLabelLength {
			return
		}

		if prev, seen := labels.Get(id); seen && utf8.RuneCountInString(prev) >= utf8.RuneCountInString(label) {
			return
		}
		labels.Set(id, label)
	})

	links := make([]types.EntityLink, 0, labels.Len())
	for pair := labels.Oldest(); pair != nil; pair = pair.Next() {
		links = append(links, types.EntityLink{Identifier: pair.Key, Label: pair.Value})
	}
	return links
}

// CountAnchors returns the raw number of detail anchors, duplicates included
func (c *Collector) CountAnchors(doc *goquery.Document) int {
	return c.anchors(doc).Length()
}

func (c *Collector) anchors(doc *goquery.Document) *goquery.Selection {
	return doc.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		return strings.Contains(href, c.opts.DetailPattern)
	})
}

// Canonicalize resolves href against base and drops the fragment
func Canonicalize(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	ref.Fragment = ""
	ref.RawFragment = ""
	if ref.Scheme == "javascript" || ref.Scheme == "mailto" {
		return "", false
	}
	return ref.String(), true
}

// VisibleText joins the text nodes under sel with single spaces, skipping
// script and style content, the way a rendered label reads.
func VisibleText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
