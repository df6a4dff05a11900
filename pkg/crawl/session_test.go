package crawl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnchorSelector(t *testing.T) {
	assert.Equal(t, `a[href*="/detail/"]`, anchorSelector("/detail/"))
}

func TestCountJS(t *testing.T) {
	assert.Equal(t, `document.querySelectorAll("a[href*=\"/detail/\"]").length`, countJS("/detail/"))
}

func TestActivateJSNormalizesVocabulary(t *testing.T) {
	js := activateJS([]string{" More ", "", "Mehr"}, "/detail/")
	assert.Contains(t, js, `const words = ["more","mehr"];`)
	assert.Contains(t, js, `const pattern = "/detail/";`)
	assert.Contains(t, js, "el.click()")
}

func TestWaitJS(t *testing.T) {
	js := waitJS("/detail/", 42, 1500*time.Millisecond)
	assert.Contains(t, js, "if (count() > 42)")
	assert.Contains(t, js, "}, 1500);")
	assert.Contains(t, js, "MutationObserver")
}

func TestFetchJSQuotesLink(t *testing.T) {
	js := fetchJS(`https://example.org/detail/1?q="x"`)
	assert.Contains(t, js, `fetch("https://example.org/detail/1?q=\"x\"", {credentials: 'include'})`)
}
