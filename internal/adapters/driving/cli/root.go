// Package cli provides the cobra command tree for the recruitr binary.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
	"github.com/custodia-labs/recruitr/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var (
	matchingService driving.MatchingService
	recordService   driving.RecordService
	searchService   driving.SearchService
	explainService  driving.ExplanationService
	statusService   driving.StatusService
	embedService    driving.EmbedService
	settingsService driving.SettingsService

	// engineErr is why the engine services could not be opened, if they were not.
	engineErr error
)

// Services holds the driving ports the commands operate on.
// Nil services make their commands fail with EngineErr when it is set, and
// with a "not configured" error otherwise.
type Services struct {
	Matching driving.MatchingService
	Records  driving.RecordService
	Search   driving.SearchService
	Explain  driving.ExplanationService
	Status   driving.StatusService
	Embed    driving.EmbedService
	Settings driving.SettingsService

	// EngineErr records a start-up failure of the matching engine.
	EngineErr error
}

// SetServices injects the services used by every command.
func SetServices(s Services) {
	matchingService = s.Matching
	recordService = s.Records
	searchService = s.Search
	explainService = s.Explain
	statusService = s.Status
	embedService = s.Embed
	settingsService = s.Settings
	engineErr = s.EngineErr
}

// unavailable reports a missing service, surfacing the engine start-up
// failure when there was one.
func unavailable(service string) error {
	if engineErr != nil {
		return fmt.Errorf("%s unavailable: %w", service, engineErr)
	}
	return fmt.Errorf("%s not configured", service)
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "recruitr",
	Short: "Résumé indexing and job matching",
	Long: `Recruitr ingests résumés (PDF, DOCX, plain text, Markdown, HTML), extracts structured
fields, and ranks them against job descriptions by semantic similarity.

Everything runs locally by default. Configure a cloud embedding provider or
an LLM for explanations with 'recruitr settings'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. Long-running commands stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
