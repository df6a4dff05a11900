package types

// NotAvailable is the placeholder written wherever extraction yields no data.
const NotAvailable = "N/A"

// ErrorMarker replaces the organization of a record whose detail page could not be read.
const ErrorMarker = "Error"

// EntityLink is one detail-page reference discovered in the listing
type EntityLink struct {
	// Identifier is the canonical detail URL and the dedup key
	Identifier string `json:"identifier"`
	Label      string `json:"label"`
}

// ParsedTitle is the decomposition of a listing label
type ParsedTitle struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Location     string `json:"location"`
}

// Field names every value the Detail Fetcher can extract.
type Field string

const (
	FieldTuition           Field = "tuition"
	FieldTeachingLanguage  Field = "teaching_language"
	FieldDeadline          Field = "deadline"
	FieldRequirements      Field = "requirements"
	FieldLanguageScore     Field = "language_score"
	FieldStandardizedTest  Field = "standardized_test"
	FieldEvaluationService Field = "evaluation_service"
)

// ExtractedFields holds data harvested from a single detail document
type ExtractedFields struct {
	Organization string           `json:"organization"`
	Location     string           `json:"location"`
	Values       map[Field]string `json:"values"`
	Link         string           `json:"link"`

	// Failed marks a record whose document could not be retrieved
	Failed bool  `json:"failed"`
	Err    error `json:"-"`
}

// Value returns the extracted value for f, or NotAvailable.
func (e ExtractedFields) Value(f Field) string {
	if v, ok := e.Values[f]; ok && v != "" {
		return v
	}
	return NotAvailable
}

// NewFailedFields builds the error variant for a link whose retrieval failed.
func NewFailedFields(link string, err error) ExtractedFields {
	return ExtractedFields{
		Organization: ErrorMarker,
		Location:     NotAvailable,
		Values:       map[Field]string{},
		Link:         link,
		Failed:       true,
		Err:          err,
	}
}

// ScrapeRecord is the exported unit, one per unique EntityLink
type ScrapeRecord struct {
	Name         string           `json:"name"`
	Organization string           `json:"organization"`
	Location     string           `json:"location"`
	Values       map[Field]string `json:"values"`
	Link         string           `json:"link"`
	Failed       bool             `json:"failed"`
}

// Value returns the record value for f, or NotAvailable.
func (r ScrapeRecord) Value(f Field) string {
	if v, ok := r.Values[f]; ok && v != "" {
		return v
	}
	return NotAvailable
}

// ExpansionState is the List Expander's transient counters.
type ExpansionState struct {
	Count       int `json:"count"`
	Activations int `json:"activations"`
}
