package extractor

import (
	"regexp"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// sectionRule lists the header patterns for one section kind, in priority order.
type sectionRule struct {
	kind    domain.SectionKind
	headers []string
}

// sectionRules is the section dispatch table. Header words must open a line
// (after optional bullets or markdown markers) and be followed by a colon or
// the end of the line.
var sectionRules = []sectionRule{
	{domain.SectionExperience, []string{
		`(?:work\s+)?experience`,
		`professional\s+experience`,
		`employment\s+history`,
		`career\s+history`,
	}},
	{domain.SectionEducation, []string{
		`education`,
		`academic\s+background`,
		`qualifications`,
	}},
	{domain.SectionSkills, []string{
		`(?:technical\s+)?skills`,
		`competencies`,
		`technologies`,
		`expertise`,
	}},
	{domain.SectionSummary, []string{
		`(?:professional\s+)?summary`,
		`profile`,
		`objective`,
		`about\s+me`,
	}},
	{domain.SectionProjects, []string{
		`projects`,
		`key\s+projects`,
		`notable\s+projects`,
	}},
	{domain.SectionCertifications, []string{
		`certifications`,
		`certificates`,
		`professional\s+certifications`,
	}},
}

// headerPattern wraps a header expression so it only matches as a heading.
func headerPattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t#*>\-•]*` + expr + `[ \t]*(?::|$)`)
}

// skillCategory groups vocabulary skills. The stored skill keeps the casing used here.
type skillCategory struct {
	name   string
	skills []string
}

var skillVocabulary = []skillCategory{
	{"programming", []string{
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust",
		"Ruby", "PHP", "Swift", "Kotlin", "Scala", "R", "MATLAB", "SQL",
	}},
	{"web_technologies", []string{
		"HTML", "CSS", "React", "Angular", "Vue.js", "Node.js", "Express",
		"Django", "Flask", "Spring", "ASP.NET", "Ruby on Rails",
	}},
	{"databases", []string{
		"MySQL", "PostgreSQL", "MongoDB", "Redis", "SQLite", "Oracle",
		"SQL Server", "Cassandra", "DynamoDB", "Elasticsearch",
	}},
	{"cloud_platforms", []string{
		"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Jenkins",
		"GitLab", "GitHub Actions", "Terraform", "Ansible",
	}},
	{"data_science", []string{
		"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Pandas",
		"NumPy", "Scikit-learn", "Jupyter", "Data Analysis", "Statistics",
	}},
	{"tools", []string{
		"Git", "Jira", "Confluence", "Slack", "Trello", "Agile", "Scrum",
		"Linux", "Windows", "macOS", "VS Code", "IntelliJ",
	}},
}

// experiencePatterns capture a year count in group 1. Every match of every
// pattern is considered and the largest value wins.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*years?\s+of\s+(?:[\w.+#-]+\s+){1,4}experience`),
	regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*years?\s*in\b`),
	regexp.MustCompile(`(?i)\bover\s*(\d{1,2})\s*years?`),
	regexp.MustCompile(`(?i)\bmore\s*than\s*(\d{1,2})\s*years?`),
	regexp.MustCompile(`(?i)\b(\d{1,2})\+\s*years?`),
}

// educationPatterns capture a degree in group 1.
var educationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(Bachelor['’]?s?\s+(?:of\s+)?(?:Computer Science|Science|Arts|Engineering|Business))`),
	regexp.MustCompile(`(?i)\b(Master['’]?s?\s+(?:of\s+)?(?:Computer Science|Science|Arts|Engineering|Business))`),
	regexp.MustCompile(`(?i)\b(Ph\.D\.?|PhD|Doctor\s+of\s+Philosophy)`),
	regexp.MustCompile(`(?i)\b(MBA|Master\s+of\s+Business\s+Administration)\b`),
	// Abbreviations are case-sensitive so "ms" or "ma" inside prose never match.
	regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(B\.S\.|B\.A\.|M\.S\.|M\.A\.|BSc|MSc|BS|BA|MS|MA)(?:[^\p{L}\p{N}_]|$)`),
}

// certificationPatterns capture a certification name in group 1.
var certificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(AWS\s+Certified(?:[ \t]+[A-Za-z0-9-]+){1,4})`),
	regexp.MustCompile(`(?i)\b(Microsoft\s+Certified(?:[ \t]*:)?(?:[ \t]+[A-Za-z0-9-]+){1,4})`),
	regexp.MustCompile(`(?i)\b(Google\s+Cloud\s+Certified(?:[ \t]+[A-Za-z0-9-]+){1,4})`),
	regexp.MustCompile(`(?i)\b(Cisco\s+Certified(?:[ \t]+[A-Za-z0-9-]+){1,4})`),
	regexp.MustCompile(`(?i)\b(Oracle\s+Certified(?:[ \t]+[A-Za-z0-9-]+){1,4})`),
	regexp.MustCompile(`(?i)\b(Certified\s+Kubernetes(?:[ \t]+[A-Za-z0-9-]+){1,3})`),
	regexp.MustCompile(`\b(PMP)\b`),
	regexp.MustCompile(`(?i)\b(Project\s+Management\s+Professional)\b`),
	regexp.MustCompile(`\b(CISSP)\b`),
	regexp.MustCompile(`(?i)\b(Certified\s+Information\s+Systems\s+Security\s+Professional)\b`),
	regexp.MustCompile(`(?i)\b(CompTIA(?:[ \t]+[A-Za-z0-9+-]+){1,3})`),
}

var languageVocabulary = []string{
	"English", "Spanish", "French", "German", "Italian", "Portuguese",
	"Chinese", "Japanese", "Korean", "Hindi", "Arabic", "Russian",
	"Dutch", "Swedish", "Norwegian", "Danish", "Finnish",
}

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/in/([\w-]+)`)
	gitHubPattern   = regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)`)
	nonDigit        = regexp.MustCompile(`\D`)
)

// termPattern matches term case-insensitively when it is not part of a larger word.
// Unlike \b it handles terms ending in symbols such as "C++" or "C#".
func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(term) + `(?:[^\p{L}\p{N}_]|$)`)
}
