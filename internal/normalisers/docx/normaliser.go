// Package docx provides the normaliser for Office Open XML (.docx) résumés.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const documentPart = "word/document.xml"

// maxDocumentPart bounds the decompressed size of word/document.xml.
const maxDocumentPart = 64 << 20

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFormats returns the formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatDOCX}
}

// Normalise extracts paragraph text from word/document.xml, one paragraph
// per line. Paragraphs inside tables are included.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return "", fmt.Errorf("docx: open archive: %w", domain.ErrExtractionFailure)
	}

	part, err := readDocumentPart(reader)
	if err != nil {
		return "", err
	}

	text, err := parseDocumentXML(part)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// readDocumentPart returns the contents of word/document.xml.
func readDocumentPart(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != documentPart {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("docx: open %s: %w", documentPart, domain.ErrExtractionFailure)
		}
		defer rc.Close()

		content, err := io.ReadAll(io.LimitReader(rc, maxDocumentPart))
		if err != nil {
			return nil, fmt.Errorf("docx: read %s: %w", documentPart, domain.ErrExtractionFailure)
		}
		return content, nil
	}
	return nil, fmt.Errorf("docx: missing %s: %w", documentPart, domain.ErrExtractionFailure)
}

// parseDocumentXML walks the WordprocessingML token stream. Text runs (w:t)
// are concatenated, w:tab becomes a tab, w:br a newline, and every closing
// w:p ends a line.
func parseDocumentXML(content []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var (
		out    strings.Builder
		inText bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx: parse %s: %w", documentPart, domain.ErrExtractionFailure)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}

	return out.String(), nil
}
