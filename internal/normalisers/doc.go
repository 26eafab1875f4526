// Package normalisers turns uploaded résumé bytes into plain text.
//
// Each sub-package decodes one format (pdf, docx, plaintext, markdown, html). The Registry
// in this package dispatches a document to the normaliser for its format;
// a format is supported exactly when a normaliser is registered for it.
package normalisers
