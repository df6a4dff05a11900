package detail

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-scripts/shortlist/internal/types"
)

const detailHTML = `
<html><body>
  <header>
    <h2 class="c-detail-header__institution">Hochschule RheinMain</h2>
    <span class="c-detail-header__city">Rüsselsheim, Germany</span>
  </header>
  <dl>
    <dt>Tuition fees per semester in EUR</dt>
    <dd>None,
        semester contribution approx. 300 EUR</dd>
    <dt>Teaching language</dt>
    <dd>English</dd>
    <dt>Application deadline</dt>
    <dd>15 July for the following winter semester</dd>
  </dl>
  <h3>Academic admission requirements</h3>
  <div><p>Bachelor's degree in computer science, GPA of 2.5 or better. GRE not required.</p></div>
  <h3>Language requirements</h3>
  <p>IELTS 6.5 or TOEFL 88</p>
  <script>var uniAssist = "uni-assist";</script>
</body></html>`

func testOptions() Options {
	return Options{
		InstitutionSelector: ".c-detail-header__institution",
		CitySelector:        ".c-detail-header__city",
		CountrySuffix:       "Germany",
		Fields:              DefaultFields(300),
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func parse(t *testing.T, raw string) *Document {
	t.Helper()
	doc, err := NewDocument([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestExtract(t *testing.T) {
	f := NewFetcher(nil, testOptions(), discardLogger())
	got := f.Extract(parse(t, detailHTML), "https://example.org/detail/1")

	assert.Equal(t, "Hochschule RheinMain", got.Organization)
	assert.Equal(t, "Rüsselsheim", got.Location)
	assert.Equal(t, "https://example.org/detail/1", got.Link)
	assert.False(t, got.Failed)

	assert.Equal(t, "None; semester contribution approx. 300 EUR", got.Value(types.FieldTuition))
	assert.Equal(t, "English", got.Value(types.FieldTeachingLanguage))
	assert.Equal(t, "15 July for the following winter semester", got.Value(types.FieldDeadline))
	assert.Equal(t, "Bachelor's degree in computer science; GPA of 2.5 or better. GRE not required.", got.Value(types.FieldRequirements))
	assert.Equal(t, "IELTS 6.5 or TOEFL 88", got.Value(types.FieldLanguageScore))

	// presence scans are deliberately naive: "GRE not required" still counts
	assert.Equal(t, Mentioned, got.Value(types.FieldStandardizedTest))
	// script content is not visible text
	assert.Equal(t, NotMentioned, got.Value(types.FieldEvaluationService))
}

func TestExtractFallsBackToHeading(t *testing.T) {
	raw := `<body><h4>Application deadline</h4><section><div>
	  1 March
	</div></section></body>`
	f := NewFetcher(nil, testOptions(), discardLogger())
	got := f.Extract(parse(t, raw), "u")

	assert.Equal(t, "1 March", got.Value(types.FieldDeadline))
	assert.Equal(t, types.NotAvailable, got.Value(types.FieldTuition))
	assert.Equal(t, types.NotAvailable, got.Organization)
	assert.Equal(t, types.NotAvailable, got.Location)
}

func TestExtractSkipsEmptyDefinition(t *testing.T) {
	raw := `<dl><dt>Fees</dt><dd>  </dd><dt>Tuition</dt><dd>1,500 EUR</dd></dl>`
	f := NewFetcher(nil, testOptions(), discardLogger())
	got := f.Extract(parse(t, raw), "u")

	assert.Equal(t, "1;500 EUR", got.Value(types.FieldTuition))
}

func TestExtractTruncatesSections(t *testing.T) {
	raw := `<h3>Requirements</h3><p>` + strings.Repeat("abc ", 100) + `</p>`
	opts := testOptions()
	opts.Fields = DefaultFields(10)
	got := NewFetcher(nil, opts, discardLogger()).Extract(parse(t, raw), "u")

	assert.Equal(t, "abc abc ab...", got.Value(types.FieldRequirements))
}

func TestLanguageScoreIgnoresTeachingLanguage(t *testing.T) {
	raw := `<dl><dt>Teaching language</dt><dd>German</dd></dl>`
	got := NewFetcher(nil, testOptions(), discardLogger()).Extract(parse(t, raw), "u")

	assert.Equal(t, "German", got.Value(types.FieldTeachingLanguage))
	assert.Equal(t, types.NotAvailable, got.Value(types.FieldLanguageScore))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a b; c", Clean("  a\r\n b,\tc \n"))
	assert.Equal(t, "", Clean(" \n "))
}

func TestFetchOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/detail/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		assert.Equal(t, "shortlist-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, detailHTML)
	}))
	defer server.Close()

	retriever := NewHTTPRetriever(HTTPOptions{Timeout: 5e9, UserAgent: "shortlist-test"})
	f := NewFetcher(retriever, testOptions(), discardLogger())

	ok := f.Fetch(context.Background(), server.URL+"/detail/ok")
	assert.False(t, ok.Failed)
	assert.Equal(t, "Hochschule RheinMain", ok.Organization)

	failed := f.Fetch(context.Background(), server.URL+"/detail/broken")
	assert.True(t, failed.Failed)
	assert.Equal(t, types.ErrorMarker, failed.Organization)
	assert.Equal(t, server.URL+"/detail/broken", failed.Link)

	var statusErr *StatusError
	require.True(t, errors.As(failed.Err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestFetchCanceled(t *testing.T) {
	retriever := NewHTTPRetriever(HTTPOptions{Timeout: 5e9, MaxRequestsPerSecond: 1})
	f := NewFetcher(retriever, testOptions(), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := f.Fetch(ctx, "http://127.0.0.1:1/detail/x")
	assert.True(t, got.Failed)
	assert.Error(t, got.Err)
}
