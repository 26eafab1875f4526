// Package html provides the normaliser for résumés saved as web pages.
// It strips markup, scripts and styles, decodes entities and keeps link
// targets so profile URLs survive for contact extraction.
package html
