package tui

import "errors"

// ErrMissingMatchingService is returned when the matching service is not provided.
var ErrMissingMatchingService = errors.New("tui: matching service is required")

// ErrMissingRecordService is returned when the record service is not provided.
var ErrMissingRecordService = errors.New("tui: record service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
