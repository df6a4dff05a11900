package title

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-scripts/shortlist/internal/types"
)

// leadingArtifacts are bullet characters upstream formatting sometimes leaves in front of a label
var leadingArtifacts = []string{"•", "·", "|", "-", "–", "—"}

// Parser splits composite listing labels into name, organization and location
type Parser struct {
	separator   string
	boilerplate *regexp.Regexp
}

// New creates a Parser splitting on separator and removing the given
// degree-level tokens case-insensitively.
func New(separator string, boilerplate []string) *Parser {
	p := &Parser{separator: separator}

	tokens := make([]string, 0, len(boilerplate))
	for _, tok := range boilerplate {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) > 0 {
		// longest first so "Master's degree" wins over a shorter overlapping token
		sort.SliceStable(tokens, func(i, j int) bool { return len(tokens[i]) > len(tokens[j]) })
		alts := make([]string, len(tokens))
		for i, tok := range tokens {
			alts[i] = tokenPattern(tok)
		}
		p.boilerplate = regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
	}
	return p
}

// tokenPattern anchors tok on word boundaries only at edges that are word characters,
// so tokens like "M.Sc." or "(Prep)" still match.
func tokenPattern(tok string) string {
	pattern := regexp.QuoteMeta(tok)
	first, _ := utf8.DecodeRuneInString(tok)
	last, _ := utf8.DecodeLastRuneInString(tok)
	if isWordRune(first) {
		pattern = `\b` + pattern
	}
	if isWordRune(last) {
		pattern += `\b`
	}
	return pattern
}

// isWordRune matches the ASCII word class \b is defined over
func isWordRune(r rune) bool {
	return r == '_' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// Parse decomposes raw. Segments beyond the third are dropped; missing parts are types.NotAvailable.
func (p *Parser) Parse(raw string) types.ParsedTitle {
	parsed := types.ParsedTitle{
		Name:         types.NotAvailable,
		Organization: types.NotAvailable,
		Location:     types.NotAvailable,
	}

	s := collapse(raw)
	if p.boilerplate != nil {
		s = collapse(p.boilerplate.ReplaceAllString(s, " "))
	}
	s = p.stripLeadingArtifact(s)

	if !strings.Contains(s, p.separator) {
		if s != "" {
			parsed.Name = s
		}
		return parsed
	}

	var segments []string
	for _, seg := range strings.Split(s, p.separator) {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}

	targets := []*string{&parsed.Name, &parsed.Organization, &parsed.Location}
	for i, seg := range segments {
		if i >= len(targets) {
			break
		}
		*targets[i] = seg
	}
	return parsed
}

func (p *Parser) stripLeadingArtifact(s string) string {
	if strings.HasPrefix(s, p.separator) {
		return strings.TrimSpace(strings.TrimPrefix(s, p.separator))
	}
	for _, artifact := range leadingArtifacts {
		if strings.HasPrefix(s, artifact) {
			return strings.TrimSpace(strings.TrimPrefix(s, artifact))
		}
	}
	return s
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
