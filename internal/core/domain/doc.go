// Package domain defines the core business entities for Recruitr.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - StructuredRecord: A field-extracted résumé
//   - IndexEntry: A stored vector with its record and slot
//   - JobDescription: A posting matched against résumés
//   - RawDocument: Uploaded bytes before normalisation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
