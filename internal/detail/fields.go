package detail

import (
	"regexp"

	"github.com/go-scripts/shortlist/internal/types"
)

// FieldSpec declares how one output field is located
type FieldSpec struct {
	Field      types.Field
	Keywords   []string
	Strategies []Strategy
	// MaxLength truncates long section text; 0 keeps the full value
	MaxLength int
}

var (
	standardizedTestPattern  = regexp.MustCompile(`\b(?:GRE|GMAT)\b`)
	evaluationServicePattern = regexp.MustCompile(`(?i)uni-assist|\bVPD\b|Vorprüfungsdokumentation`)
)

// DefaultFields is the field table for programme detail pages.
func DefaultFields(sectionMaxLength int) []FieldSpec {
	lookup := []Strategy{DefinitionList{}, HeadingProximity{}}
	// section text lives under headings; definition pairs are the fallback
	section := []Strategy{HeadingProximity{}, DefinitionList{}}

	return []FieldSpec{
		{
			Field:      types.FieldTuition,
			Keywords:   []string{"tuition", "semester contribution", "fees"},
			Strategies: lookup,
		},
		{
			Field:      types.FieldTeachingLanguage,
			Keywords:   []string{"teaching language", "instruction language", "language of instruction"},
			Strategies: lookup,
		},
		{
			Field:      types.FieldDeadline,
			Keywords:   []string{"deadline", "application"},
			Strategies: lookup,
		},
		{
			Field:      types.FieldRequirements,
			Keywords:   []string{"academic admission", "requirements"},
			Strategies: section,
			MaxLength:  sectionMaxLength,
		},
		// headings only: "language" would match the teaching language <dt>
		{
			Field:      types.FieldLanguageScore,
			Keywords:   []string{"language requirements", "toefl", "ielts", "language"},
			Strategies: []Strategy{HeadingProximity{}},
			MaxLength:  sectionMaxLength,
		},
		{
			Field:      types.FieldStandardizedTest,
			Strategies: []Strategy{RegexPresence{Pattern: standardizedTestPattern}},
		},
		{
			Field:      types.FieldEvaluationService,
			Strategies: []Strategy{RegexPresence{Pattern: evaluationServicePattern}},
		},
	}
}
