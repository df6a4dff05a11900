package title

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-scripts/shortlist/internal/types"
)

func TestParse(t *testing.T) {
	p := New("•", []string{"Master's degree", "Bachelor's degree", "PhD / Doctorate"})
	na := types.NotAvailable

	tests := []struct {
		name string
		raw  string
		want types.ParsedTitle
	}{
		{
			name: "three segments",
			raw:  "AI and Advanced Info Tech • RheinMain Uni • Russelsheim",
			want: types.ParsedTitle{Name: "AI and Advanced Info Tech", Organization: "RheinMain Uni", Location: "Russelsheim"},
		},
		{
			name: "no separator",
			raw:  "Just A Title",
			want: types.ParsedTitle{Name: "Just A Title", Organization: na, Location: na},
		},
		{
			name: "boilerplate and leading bullet",
			raw:  "Master's degree • AI • Tech Uni",
			want: types.ParsedTitle{Name: "AI", Organization: "Tech Uni", Location: na},
		},
		{
			name: "boilerplate is case-insensitive",
			raw:  "MASTER'S DEGREE Data Science • Uni Bonn • Bonn",
			want: types.ParsedTitle{Name: "Data Science", Organization: "Uni Bonn", Location: "Bonn"},
		},
		{
			name: "excess segments dropped",
			raw:  "Physics • TU Dresden • Dresden • Saxony • Germany",
			want: types.ParsedTitle{Name: "Physics", Organization: "TU Dresden", Location: "Dresden"},
		},
		{
			name: "empty segments discarded",
			raw:  "Chemistry •  • Uni Jena",
			want: types.ParsedTitle{Name: "Chemistry", Organization: "Uni Jena", Location: na},
		},
		{
			name: "whitespace collapsed",
			raw:  "  Urban\n  Planning   •\tHCU  ",
			want: types.ParsedTitle{Name: "Urban Planning", Organization: "HCU", Location: na},
		},
		{
			name: "dash artifact",
			raw:  "- Mechanical Engineering",
			want: types.ParsedTitle{Name: "Mechanical Engineering", Organization: na, Location: na},
		},
		{
			name: "only boilerplate",
			raw:  "Master's degree",
			want: types.ParsedTitle{Name: na, Organization: na, Location: na},
		},
		{
			name: "token inside a word is kept",
			raw:  "Mastering Media • HdM",
			want: types.ParsedTitle{Name: "Mastering Media", Organization: "HdM", Location: na},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Parse(tt.raw))
		})
	}
}

func TestParseWithoutBoilerplate(t *testing.T) {
	p := New("|", nil)
	assert.Equal(t, types.ParsedTitle{Name: "A", Organization: "B", Location: "C"}, p.Parse("A | B | C"))
}

func TestParsePunctuatedBoilerplate(t *testing.T) {
	p := New("•", []string{"M.Sc.", "(Prep)", "Master's degree"})

	assert.Equal(t,
		types.ParsedTitle{Name: "Physics", Organization: "TU Dresden", Location: types.NotAvailable},
		p.Parse("M.Sc. Physics • TU Dresden"))
	assert.Equal(t,
		types.ParsedTitle{Name: "German C1", Organization: "Goethe Institut", Location: "Bonn"},
		p.Parse("German C1 (prep) • Goethe Institut • Bonn"))
	// word-edged tokens keep their boundaries
	assert.Equal(t, "Master's degrees overview", p.Parse("Master's degrees overview").Name)
}

func TestTokenPattern(t *testing.T) {
	assert.Equal(t, `\bM\.Sc\.`, tokenPattern("M.Sc."))
	assert.Equal(t, `\(Prep\)`, tokenPattern("(Prep)"))
	assert.Equal(t, `\bPrep course\b`, tokenPattern("Prep course"))
	assert.Equal(t, `Über\b`, tokenPattern("Über"))
}
