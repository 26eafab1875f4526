package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported résumé document format.
type Format string

// Supported document formats.
const (
	// FormatPDF is a paginated PDF document.
	FormatPDF Format = "pdf"

	// FormatDOCX is an Office Open XML word-processing package.
	FormatDOCX Format = "docx"

	// FormatText is UTF-8 plain text.
	FormatText Format = "txt"

	// FormatMarkdown is a Markdown document.
	FormatMarkdown Format = "md"

	// FormatHTML is a saved web page.
	FormatHTML Format = "html"
)

// formatAliases maps alternative extensions to their format.
var formatAliases = map[string]Format{
	"markdown": FormatMarkdown,
	"htm":      FormatHTML,
}

// AllFormats returns every format the system accepts.
func AllFormats() []Format {
	return []Format{FormatPDF, FormatDOCX, FormatText, FormatMarkdown, FormatHTML}
}

// IsValid returns true if the format is in the closed set.
func (f Format) IsValid() bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatText, FormatMarkdown, FormatHTML:
		return true
	default:
		return false
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}

// FormatFromFilename derives the format from a file extension.
// The second return is false when the extension is not supported.
func FormatFromFilename(name string) (Format, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if alias, ok := formatAliases[ext]; ok {
		return alias, true
	}
	f := Format(ext)
	return f, f.IsValid()
}

// AllowedExtensions returns the accepted upload extensions.
func AllowedExtensions() []string {
	formats := AllFormats()
	exts := make([]string, len(formats))
	for i, f := range formats {
		exts[i] = f.Extension()
	}
	return exts
}

// RawDocument represents the uploaded bytes of a résumé before normalisation.
type RawDocument struct {
	// Filename is the display name supplied by the uploader.
	Filename string

	// Format is the declared document format.
	Format Format

	// Content is the raw bytes.
	Content []byte
}

// Upload is one file submitted for ingestion.
type Upload struct {
	// Filename is the original file name; its extension selects the format.
	Filename string

	// Content is the file body.
	Content []byte
}
