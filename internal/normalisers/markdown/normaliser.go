// Package markdown provides the normaliser for Markdown résumés.
package markdown

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFormats returns the formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatMarkdown}
}

// Normalise strips Markdown syntax. Headings stay on their own line so
// section detection still sees them.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	content := string(raw.Content)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
	}
	return stripMarkdown(strings.ReplaceAll(content, "\r\n", "\n")), nil
}

var (
	codeFence     = regexp.MustCompile("(?m)^[ \t]*```.*$")
	inlineCode    = regexp.MustCompile("`([^`]+)`")
	images        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links         = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)[^)]*\)`)
	autolinks     = regexp.MustCompile(`<((?:https?|mailto):[^>]+)>`)
	headings      = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+(.*?)[ \t]*#*[ \t]*$`)
	setextRule    = regexp.MustCompile(`(?m)^[ \t]*(=+|-+)[ \t]*$`)
	bold          = regexp.MustCompile(`(\*\*|__)(\S(?:.*?\S)?)(\*\*|__)`)
	italic        = regexp.MustCompile(`(^|[\s(])[*_]([^\s*_](?:[^*_\n]*?[^\s*_])?)[*_]`)
	blockquote    = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	horizontal    = regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`)
	listMarkers   = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	numberedList  = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+`)
	tableRule     = regexp.MustCompile(`(?m)^[ \t]*\|?[ \t]*:?-{3,}:?[ \t]*(\|[ \t]*:?-{3,}:?[ \t]*)*\|?[ \t]*$`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// expandLink keeps both the link text and its target, dropping the target
// when it repeats the text.
func expandLink(match string) string {
	parts := links.FindStringSubmatch(match)
	text, target := parts[1], strings.TrimPrefix(parts[2], "mailto:")
	if text == target || !strings.Contains(target, ":") && !strings.Contains(target, "@") {
		return text
	}
	return text + " (" + target + ")"
}

// stripMarkdown removes common Markdown syntax and keeps the text.
func stripMarkdown(content string) string {
	content = codeFence.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllStringFunc(content, expandLink)
	content = autolinks.ReplaceAllStringFunc(content, func(s string) string {
		return strings.TrimPrefix(strings.Trim(s, "<>"), "mailto:")
	})

	content = horizontal.ReplaceAllString(content, "")
	content = tableRule.ReplaceAllString(content, "")
	content = headings.ReplaceAllString(content, "$1")
	content = setextRule.ReplaceAllString(content, "")

	content = bold.ReplaceAllString(content, "$2")
	content = italic.ReplaceAllString(content, "$1$2")

	content = blockquote.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") {
			line = tableRow(line)
		}
		lines[i] = line
	}
	content = strings.Join(lines, "\n")

	content = multiNewlines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// tableRow joins the cells of a pipe table row.
func tableRow(line string) string {
	cells := strings.Split(strings.Trim(line, "|"), "|")
	out := cells[:0]
	for _, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " · ")
}
