// Package extractor turns normalised résumé text into a structured record.
//
// Extraction is a pure function of its input. Every vocabulary (section
// headers, skills, degrees, certifications, languages) is a static table in
// rules.go; adding a category means adding a table row, not new logic.
package extractor

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.FieldExtractor = (*Extractor)(nil)

// DefaultSectionLimit is the maximum length of a section span, in characters.
const DefaultSectionLimit = 1000

type compiledSection struct {
	kind    domain.SectionKind
	headers []*regexp.Regexp
}

type termMatcher struct {
	term string
	re   *regexp.Regexp
}

// Extractor detects résumé fields using compiled pattern tables.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	sectionLimit int
	sections     []compiledSection
	allHeaders   []*regexp.Regexp
	skills       []termMatcher
	languages    []termMatcher
}

// Option configures the extractor.
type Option func(*Extractor)

// WithSectionLimit sets the maximum section length in characters.
func WithSectionLimit(limit int) Option {
	return func(e *Extractor) {
		if limit > 0 {
			e.sectionLimit = limit
		}
	}
}

// New creates an extractor with the built-in vocabularies.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		sectionLimit: DefaultSectionLimit,
	}

	for _, opt := range opts {
		opt(e)
	}

	for _, rule := range sectionRules {
		cs := compiledSection{kind: rule.kind}
		for _, h := range rule.headers {
			re := headerPattern(h)
			cs.headers = append(cs.headers, re)
			e.allHeaders = append(e.allHeaders, re)
		}
		e.sections = append(e.sections, cs)
	}

	for _, cat := range skillVocabulary {
		for _, skill := range cat.skills {
			e.skills = append(e.skills, termMatcher{term: skill, re: termPattern(skill)})
		}
	}

	for _, lang := range languageVocabulary {
		e.languages = append(e.languages, termMatcher{term: lang, re: termPattern(lang)})
	}

	return e
}

// Extract builds a structured record from plain text. ID, Filename and
// CreatedAt are left for the caller to assign.
// Returns domain.ErrNoContent for empty or whitespace-only text.
func (e *Extractor) Extract(text string) (*domain.StructuredRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("extract fields: %w", domain.ErrNoContent)
	}

	return &domain.StructuredRecord{
		RawText:         text,
		Sections:        e.Sections(text),
		Skills:          e.Skills(text),
		ExperienceYears: ExperienceYears(text),
		Education:       Education(text),
		Certifications:  Certifications(text),
		Languages:       e.Languages(text),
		ContactInfo:     ContactInfo(text),
	}, nil
}

// Sections detects each section kind. For every kind the first matching
// header pattern wins; the section runs to the nearest following header of
// any kind, or to the end of the text.
func (e *Extractor) Sections(text string) map[domain.SectionKind]string {
	sections := make(map[domain.SectionKind]string)

	for _, cs := range e.sections {
		for _, re := range cs.headers {
			loc := re.FindStringIndex(text)
			if loc == nil {
				continue
			}

			start := loc[1]
			end := e.nextHeader(text, start)
			sections[cs.kind] = truncateRunes(strings.TrimSpace(text[start:end]), e.sectionLimit)
			break
		}
	}

	return sections
}

// nextHeader returns the start of the first header of any kind at or after pos.
func (e *Extractor) nextHeader(text string, pos int) int {
	next := len(text)
	for _, re := range e.allHeaders {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if loc[0] >= pos {
				if loc[0] < next {
					next = loc[0]
				}
				break
			}
		}
	}
	return next
}

// Skills returns vocabulary skills present in text, deduplicated and sorted.
func (e *Extractor) Skills(text string) []string {
	return matchTerms(e.skills, text)
}

// Languages returns vocabulary languages present in text, sorted.
func (e *Extractor) Languages(text string) []string {
	return matchTerms(e.languages, text)
}

func matchTerms(matchers []termMatcher, text string) []string {
	seen := make(map[string]bool)
	found := []string{}
	for _, m := range matchers {
		key := strings.ToLower(m.term)
		if seen[key] || !m.re.MatchString(text) {
			continue
		}
		seen[key] = true
		found = append(found, m.term)
	}
	sort.Strings(found)
	return found
}

// ExperienceYears returns the largest year count across all experience
// patterns, or nil when none match.
func ExperienceYears(text string) *int {
	best := -1
	for _, re := range experiencePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n > best {
				best = n
			}
		}
	}
	if best < 0 {
		return nil
	}
	return &best
}

// Education returns detected degrees.
func Education(text string) []string {
	return collect(educationPatterns, text)
}

// Certifications returns detected certifications.
func Certifications(text string) []string {
	return collect(certificationPatterns, text)
}

// collect gathers group 1 of every match, deduplicated case-insensitively
// with the first spelling kept, and sorted.
func collect(patterns []*regexp.Regexp, text string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			value := strings.Join(strings.Fields(m[1]), " ")
			key := strings.ToLower(value)
			if value == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, value)
		}
	}
	sort.Strings(out)
	return out
}

// ContactInfo extracts at most one value per contact channel.
func ContactInfo(text string) map[domain.ContactChannel]string {
	info := make(map[domain.ContactChannel]string)

	if email := emailPattern.FindString(text); email != "" {
		info[domain.ContactEmail] = email
	}

	if phone := phonePattern.FindString(text); phone != "" {
		info[domain.ContactPhone] = nonDigit.ReplaceAllString(phone, "")
	}

	if m := linkedInPattern.FindStringSubmatch(text); m != nil {
		info[domain.ContactLinkedIn] = "linkedin.com/in/" + strings.ToLower(m[1])
	}

	if m := gitHubPattern.FindStringSubmatch(text); m != nil {
		info[domain.ContactGitHub] = "github.com/" + strings.ToLower(m[1])
	}

	return info
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
