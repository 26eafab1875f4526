package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Index search never returns it; an empty result is not an error.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotSupported indicates an operation the system refuses by design,
	// such as deleting a single résumé from the vector index.
	ErrNotSupported = errors.New("not supported")

	// Document Errors.

	// ErrUnsupportedFormat indicates a document format with no registered normaliser.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtractionFailure indicates a decoder could not produce text
	// (corrupt file, encrypted content, image-only scan).
	ErrExtractionFailure = errors.New("extraction failure")

	// ErrNoContent indicates a document decoded successfully but holds no text.
	ErrNoContent = errors.New("no content")

	// ErrFileTooLarge indicates an upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// Index Errors.

	// ErrDimensionMismatch indicates a vector whose length differs from the
	// index dimension. This is a configuration error, not a recoverable one.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInconsistentState indicates the persisted vector blob and metadata
	// sidecar disagree, or only one of them exists.
	ErrInconsistentState = errors.New("inconsistent index state")

	// AI Errors.

	// ErrModelUnavailable indicates no embedding model could be loaded
	// after exhausting the configured fallbacks.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Match explanations fall back to a templated summary.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
