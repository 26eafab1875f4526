// Package mcp provides an MCP (Model Context Protocol) server adapter for Recruitr.
// It lets AI assistants ingest résumés and match job descriptions against them.
package mcp

import "errors"

// ErrMissingMatchingService is returned when the matching service is not provided.
var ErrMissingMatchingService = errors.New("mcp: matching service is required")

// ErrServiceUnavailable is returned by tools whose backing service was not wired.
var ErrServiceUnavailable = errors.New("mcp: service not configured")
