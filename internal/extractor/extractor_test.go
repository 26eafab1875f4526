package extractor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/normalisers/plaintext"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 (555) 123-4567

Summary
Backend engineer.

Experience:
Acme Corp 2019-2024

Education
BSc Computer Science

Skills: Go, Python
`

func intPtr(n int) *int { return &n }

func TestExtract_Scenario(t *testing.T) {
	text := "5+ years of Python experience, AWS Certified Solutions Architect, email john@x.com"

	rec, err := New().Extract(text)
	require.NoError(t, err)

	require.NotNil(t, rec.ExperienceYears)
	assert.Equal(t, 5, *rec.ExperienceYears)
	assert.Contains(t, rec.Skills, "Python")
	assert.Contains(t, rec.Certifications, "AWS Certified Solutions Architect")
	assert.Equal(t, "john@x.com", rec.ContactInfo[domain.ContactEmail])
	assert.Equal(t, text, rec.RawText)
	assert.Empty(t, rec.ID)
	assert.True(t, rec.CreatedAt.IsZero())
}

func TestExtract_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		rec, err := New().Extract(text)
		assert.ErrorIs(t, err, domain.ErrNoContent)
		assert.Nil(t, rec)
	}
}

func TestExtract_NoCandidatesIsNotAnError(t *testing.T) {
	rec, err := New().Extract("lorem ipsum dolor sit amet")
	require.NoError(t, err)

	assert.Empty(t, rec.Sections)
	assert.Empty(t, rec.Skills)
	assert.Nil(t, rec.ExperienceYears)
	assert.Empty(t, rec.Education)
	assert.Empty(t, rec.Certifications)
	assert.Empty(t, rec.ContactInfo)
}

func TestSections(t *testing.T) {
	sections := New().Sections(sampleResume)

	assert.Equal(t, map[domain.SectionKind]string{
		domain.SectionSummary:    "Backend engineer.",
		domain.SectionExperience: "Acme Corp 2019-2024",
		domain.SectionEducation:  "BSc Computer Science",
		domain.SectionSkills:     "Go, Python",
	}, sections)
}

func TestSections_HeaderMustOpenLine(t *testing.T) {
	sections := New().Sections("I have great experience with education software.")
	assert.Empty(t, sections)
}

func TestSections_MarkdownHeaders(t *testing.T) {
	sections := New().Sections("## Work Experience\nGlobex\n## Projects\nSearch engine")
	assert.Equal(t, "Globex", sections[domain.SectionExperience])
	assert.Equal(t, "Search engine", sections[domain.SectionProjects])
}

func TestSections_Limit(t *testing.T) {
	sections := New(WithSectionLimit(5)).Sections(sampleResume)
	assert.Equal(t, "Acme ", sections[domain.SectionExperience])

	long := "Summary\n" + strings.Repeat("é", DefaultSectionLimit+50)
	got := New().Sections(long)[domain.SectionSummary]
	assert.Equal(t, DefaultSectionLimit, len([]rune(got)))
}

func TestWithSectionLimit_IgnoresNonPositive(t *testing.T) {
	assert.Equal(t, DefaultSectionLimit, New(WithSectionLimit(0)).sectionLimit)
}

func TestSkills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "symbols and multi-word terms",
			text: "Expert in C++, C#, Go and JavaScript; used Node.js and Ruby on Rails.",
			want: []string{"C#", "C++", "Go", "JavaScript", "Node.js", "Ruby", "Ruby on Rails"},
		},
		{
			name: "case-insensitive and deduplicated",
			text: "python PYTHON Python",
			want: []string{"Python"},
		},
		{
			name: "no partial words",
			text: "Golang and Rustacean",
			want: []string{},
		},
		{
			name: "none",
			text: "cooking",
			want: []string{},
		},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Skills(tt.text))
		})
	}
}

func TestExperienceYears(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{
		{"plus form", "5+ years of Python experience", intPtr(5)},
		{"plain", "3 years experience", intPtr(3)},
		{"over", "Over 10 years in software", intPtr(10)},
		{"maximum wins", "3 years experience, more than 7 years in total", intPtr(7)},
		{"date ranges only", "2019 - 2024", nil},
		{"three digit numbers ignored", "123 years experience", nil},
		{"absent", "no numbers here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExperienceYears(tt.text))
		})
	}
}

func TestEducation(t *testing.T) {
	got := Education("Bachelor of Science in Physics; Master's of Engineering; PhD; MBA")
	assert.Equal(t, []string{"Bachelor of Science", "MBA", "Master's of Engineering", "PhD"}, got)
}

func TestEducation_AbbreviationsAreCaseSensitive(t *testing.T) {
	assert.Empty(t, Education("I am a team player and ms word user, ba humbug"))
	assert.Equal(t, []string{"BSc"}, Education(sampleResume))
}

func TestCertifications(t *testing.T) {
	text := "Certifications:\nAWS Certified Developer Associate\nPMP\nCompTIA Security+\n" +
		"Certified Kubernetes Administrator (CKA)\ncissp"

	assert.Equal(t, []string{
		"AWS Certified Developer Associate",
		"Certified Kubernetes Administrator",
		"CompTIA Security+",
		"PMP",
	}, Certifications(text))
}

func TestCertifications_Deduplicated(t *testing.T) {
	got := Certifications("PMP\nProject Management Professional\nproject  management professional")
	assert.Equal(t, []string{"PMP", "Project Management Professional"}, got)
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"English", "Spanish"}, New().Languages("Fluent in spanish and English"))
}

func TestContactInfo(t *testing.T) {
	text := "Reach me at jane.doe@example.com or +1 (555) 123-4567.\n" +
		"linkedin.com/in/Jane-Doe https://github.com/JaneDoe"

	assert.Equal(t, map[domain.ContactChannel]string{
		domain.ContactEmail:    "jane.doe@example.com",
		domain.ContactPhone:    "15551234567",
		domain.ContactLinkedIn: "linkedin.com/in/jane-doe",
		domain.ContactGitHub:   "github.com/janedoe",
	}, ContactInfo(text))
}

func TestContactInfo_FirstMatchWins(t *testing.T) {
	info := ContactInfo("a@one.com b@two.com 555.111.2222 555-333-4444")
	assert.Equal(t, "a@one.com", info[domain.ContactEmail])
	assert.Equal(t, "5551112222", info[domain.ContactPhone])
}

func TestDecodeExtract_Idempotent(t *testing.T) {
	raw := &domain.RawDocument{
		Filename: "jane.txt",
		Format:   domain.FormatText,
		Content:  []byte(sampleResume),
	}
	n := plaintext.New()
	e := New()

	extract := func() *domain.StructuredRecord {
		text, err := n.Normalise(context.Background(), raw)
		require.NoError(t, err)
		rec, err := e.Extract(text)
		require.NoError(t, err)
		return rec
	}

	assert.Equal(t, extract(), extract())
}
