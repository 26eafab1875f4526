package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingMatchingService,
		ErrMissingRecordService,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		assert.Contains(t, msg, "tui:")
		seen[msg] = true
	}
}
