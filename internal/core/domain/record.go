package domain

import (
	"sort"
	"strings"
	"time"
)

// SectionKind identifies a conventional résumé section.
type SectionKind string

// Recognised section kinds.
const (
	SectionExperience     SectionKind = "experience"
	SectionEducation      SectionKind = "education"
	SectionSkills         SectionKind = "skills"
	SectionSummary        SectionKind = "summary"
	SectionProjects       SectionKind = "projects"
	SectionCertifications SectionKind = "certifications"
)

// AllSectionKinds returns every section kind in display order.
func AllSectionKinds() []SectionKind {
	return []SectionKind{
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionSkills,
		SectionProjects,
		SectionCertifications,
	}
}

// ContactChannel identifies a way to reach a candidate.
type ContactChannel string

// Recognised contact channels.
const (
	ContactEmail    ContactChannel = "email"
	ContactPhone    ContactChannel = "phone"
	ContactLinkedIn ContactChannel = "linkedin"
	ContactGitHub   ContactChannel = "github"
)

// StructuredRecord is the field-extracted representation of one ingested résumé.
// It is created once at ingestion and never mutated afterwards.
type StructuredRecord struct {
	// ID is the opaque unique identifier assigned at ingestion.
	ID string `json:"id"`

	// Filename is the display name; not guaranteed unique.
	Filename string `json:"filename"`

	// RawText is the full normalised plain text.
	RawText string `json:"raw_text"`

	// Sections maps a section kind to its (truncated) text span.
	Sections map[SectionKind]string `json:"sections"`

	// Skills are vocabulary skill names found in the text, sorted.
	Skills []string `json:"skills"`

	// ExperienceYears is the largest stated experience duration.
	// Nil when no experience pattern matched.
	ExperienceYears *int `json:"experience_years,omitempty"`

	// Education holds detected degrees.
	Education []string `json:"education"`

	// Certifications holds detected professional certifications.
	Certifications []string `json:"certifications"`

	// Languages holds detected spoken languages.
	Languages []string `json:"languages"`

	// ContactInfo holds at most one value per channel.
	ContactInfo map[ContactChannel]string `json:"contact_info"`

	// CreatedAt is when the record was ingested.
	CreatedAt time.Time `json:"created_at"`
}

// HasSkill reports whether the record lists a skill, ignoring case.
func (r *StructuredRecord) HasSkill(skill string) bool {
	for _, s := range r.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// SectionText joins the detected sections in display order.
// Used as résumé content for match explanations.
func (r *StructuredRecord) SectionText() string {
	parts := make([]string, 0, len(r.Sections))
	for _, kind := range AllSectionKinds() {
		if text, ok := r.Sections[kind]; ok && text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Email returns the email contact, or empty string.
func (r *StructuredRecord) Email() string {
	return r.ContactInfo[ContactEmail]
}

// SkillOverlap returns the case-insensitive intersection of required and
// the record's skills, lower-cased and sorted.
func (r *StructuredRecord) SkillOverlap(required []string) []string {
	have := make(map[string]struct{}, len(r.Skills))
	for _, s := range r.Skills {
		have[strings.ToLower(s)] = struct{}{}
	}

	seen := make(map[string]struct{})
	overlap := []string{}
	for _, s := range required {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if _, ok := have[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		overlap = append(overlap, key)
	}
	sort.Strings(overlap)
	return overlap
}
