package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchOptions_EffectiveLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"unset", 0, DefaultSearchLimit},
		{"negative", -1, DefaultSearchLimit},
		{"explicit", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchOptions{Limit: tt.limit}.EffectiveLimit())
		})
	}
}
