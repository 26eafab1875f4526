package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

func TestEngineFailureIsReported(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		service string
	}{
		{"ingest", []string{"ingest", "cv.pdf"}, "matching service"},
		{"match", []string{"match", "--title", "Go", "--description", "Go developer"}, "matching service"},
		{"watch", []string{"watch", "."}, "matching service"},
		{"stats", []string{"stats"}, "matching service"},
		{"rebuild", []string{"rebuild", "--yes"}, "matching service"},
		{"records list", []string{"records", "list"}, "record service"},
		{"search", []string{"search", "go"}, "search service"},
		{"analyse", []string{"analyse", "--title", "Go"}, "explanation service"},
		{"status", []string{"status"}, "status service"},
		{"embed", []string{"embed", "text"}, "embed service"},
		{"tui", []string{"tui"}, "matching service"},
		{"mcp serve", []string{"mcp", "serve"}, "matching service"},
	}

	cause := fmt.Errorf("open index: %w", domain.ErrInconsistentState)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetServices(Services{Settings: &mockSettingsService{settings: domain.DefaultAppSettings()}, EngineErr: cause})
			t.Cleanup(func() { SetServices(Services{}) })

			_, _, err := executeCommand(t, "", tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInconsistentState)
			assert.Contains(t, err.Error(), tt.service+" unavailable")
		})
	}
}

func TestEngineFailure_SettingsStillWork(t *testing.T) {
	SetServices(Services{
		Settings:  &mockSettingsService{settings: domain.DefaultAppSettings()},
		EngineErr: domain.ErrModelUnavailable,
	})
	t.Cleanup(func() { SetServices(Services{}) })

	out, _, err := executeCommand(t, "", "settings", "show")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestUnavailable_WithoutEngineFailure(t *testing.T) {
	SetServices(Services{})

	err := unavailable("matching service")
	assert.EqualError(t, err, "matching service not configured")
}
