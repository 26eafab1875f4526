package html

import (
	"context"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFormats returns the formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatHTML}
}

// Normalise returns the readable text of an HTML page, one block per line.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	content := string(raw.Content)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
	}
	return stripHTML(content), nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	anchorTag         = regexp.MustCompile(`(?is)<a\s[^>]*href\s*=\s*["']((?:https?|mailto):[^"']+)["'][^>]*>(.*?)</a>`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|td|th|blockquote|pre|table|section|article|header|footer|ul|ol)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article|header|footer|ul|ol)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags            = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t\p{Zs}]+`)
)

// expandAnchor rewrites a link as "text (target)" unless the text already
// shows the target.
func expandAnchor(match string) string {
	parts := anchorTag.FindStringSubmatch(match)
	target := strings.TrimPrefix(parts[1], "mailto:")
	text := strings.TrimSpace(allTags.ReplaceAllString(parts[2], ""))
	switch {
	case text == "":
		return target
	case strings.Contains(text, target):
		return text
	default:
		return text + " (" + target + ")"
	}
}

// stripHTML removes markup and returns non-empty trimmed lines.
func stripHTML(content string) string {
	for _, re := range []*regexp.Regexp{scriptTag, styleTag, noscriptTag, headTag, svgTag, htmlComments} {
		content = re.ReplaceAllString(content, "")
	}

	content = anchorTag.ReplaceAllStringFunc(content, expandAnchor)

	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
