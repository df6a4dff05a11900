package collector

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-scripts/shortlist/internal/types"
)

const listingHTML = `
<html><body>
  <ul>
    <li>
      <a href="/programmes/detail/ai/?hec-id=1"><img alt="AI" src="ai.png">AI</a>
      <a href="/programmes/detail/ai/?hec-id=1#top">AI and Advanced Info Tech • RheinMain Uni • Russelsheim</a>
    </li>
    <li>
      <a href="https://example.org/programmes/detail/physics/"><span>Physics</span> <span>•</span> <span>TU Dresden</span> <span>•</span> <span>Dresden</span></a>
      <a href="https://example.org/programmes/detail/physics/"><i class="icon"></i></a>
    </li>
    <li><a href="/programmes/search?page=2">Show more</a></li>
    <li><a href="/programmes/detail/icon-only/">i</a></li>
  </ul>
</body></html>`

func newDoc(t *testing.T, raw string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func testCollector() *Collector {
	return New(Options{DetailPattern: "/detail/", MinLabelLength: 6})
}

func TestCollectLongestLabelWins(t *testing.T) {
	base, _ := url.Parse("https://example.org/programmes/result/")
	links := testCollector().Collect(newDoc(t, listingHTML), base)

	require.Len(t, links, 2)
	assert.Equal(t, types.EntityLink{
		Identifier: "https://example.org/programmes/detail/ai/?hec-id=1",
		Label:      "AI and Advanced Info Tech • RheinMain Uni • Russelsheim",
	}, links[0])
	assert.Equal(t, "https://example.org/programmes/detail/physics/", links[1].Identifier)
	assert.Equal(t, "Physics • TU Dresden • Dresden", links[1].Label)
}

func TestCollectIsIdempotent(t *testing.T) {
	base, _ := url.Parse("https://example.org/")
	doc := newDoc(t, listingHTML)
	c := testCollector()

	assert.Equal(t, c.Collect(doc, base), c.Collect(doc, base))
}

func TestCollectExcludesShortLabels(t *testing.T) {
	raw := `<a href="/detail/x">AI</a><a href="/detail/y">icon</a>`
	links := testCollector().Collect(newDoc(t, raw), nil)
	assert.Empty(t, links)
}

func TestCollectPreservesFirstSeenOrder(t *testing.T) {
	raw := `
<a href="/detail/b">Beta programme</a>
<a href="/detail/a">Alpha programme</a>
<a href="/detail/b">Beta programme • Longer label</a>`
	links := testCollector().Collect(newDoc(t, raw), nil)

	require.Len(t, links, 2)
	assert.Equal(t, "/detail/b", links[0].Identifier)
	assert.Equal(t, "Beta programme • Longer label", links[0].Label)
	assert.Equal(t, "/detail/a", links[1].Identifier)
}

func TestCountAnchors(t *testing.T) {
	assert.Equal(t, 5, testCollector().CountAnchors(newDoc(t, listingHTML)))
}

func TestCollectHTML(t *testing.T) {
	links, err := testCollector().CollectHTML(`<a href="/detail/z">Zoology • Uni Z</a>`, nil)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestCanonicalize(t *testing.T) {
	base, _ := url.Parse("https://example.org/list/")

	tests := []struct {
		href string
		want string
		ok   bool
	}{
		{href: "/detail/1", want: "https://example.org/detail/1", ok: true},
		{href: "detail/2#x", want: "https://example.org/list/detail/2", ok: true},
		{href: " https://other.org/detail/3 ", want: "https://other.org/detail/3", ok: true},
		{href: "javascript:void(0)", ok: false},
	}

	for _, tt := range tests {
		got, ok := Canonicalize(base, tt.href)
		assert.Equal(t, tt.ok, ok, tt.href)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}
