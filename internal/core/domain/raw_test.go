package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormat_IsValid tests the closed format set
func TestFormat_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		expected bool
	}{
		{"pdf is valid", FormatPDF, true},
		{"docx is valid", FormatDOCX, true},
		{"txt is valid", FormatText, true},
		{"md is valid", FormatMarkdown, true},
		{"html is valid", FormatHTML, true},
		{"htm alias is not a format", Format("htm"), false},
		{"doc is invalid", Format("doc"), false},
		{"empty is invalid", Format(""), false},
		{"uppercase is invalid", Format("PDF"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.IsValid())
		})
	}
}

// TestFormatFromFilename tests extension-based format detection
func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		format   Format
		ok       bool
	}{
		{"resume.pdf", FormatPDF, true},
		{"Resume.PDF", FormatPDF, true},
		{"cv.docx", FormatDOCX, true},
		{"notes.txt", FormatText, true},
		{"/tmp/a.b/cv.txt", FormatText, true},
		{"cv.md", FormatMarkdown, true},
		{"cv.markdown", FormatMarkdown, true},
		{"cv.HTM", FormatHTML, true},
		{"cv.html", FormatHTML, true},
		{"cv.doc", Format("doc"), false},
		{"cv", Format(""), false},
		{"image.png", Format("png"), false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			f, ok := FormatFromFilename(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.format, f)
		})
	}
}

// TestAllowedExtensions tests the upload allow-list
func TestAllowedExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf", ".docx", ".txt", ".md", ".html"}, AllowedExtensions())
}

// TestFormat_String tests string conversion
func TestFormat_String(t *testing.T) {
	assert.Equal(t, "docx", FormatDOCX.String())
	assert.Equal(t, ".docx", FormatDOCX.Extension())
}
