package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui"
	"github.com/custodia-labs/recruitr/internal/core/domain"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Enter a job title and description to rank indexed résumés, then open any
match to see its extracted fields. The Résumés view pages through every
ingested résumé.

Controls:
  ↑/k, ↓/j - Navigate
  Tab      - Switch job field
  Enter    - Match / Open
  Esc      - Back
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// configuredMatchDefaults returns the saved top-k and threshold, or the
// domain defaults when settings are unavailable.
func configuredMatchDefaults() domain.MatchingSettings {
	d := domain.MatchingSettings{TopK: domain.DefaultTopK, Threshold: domain.DefaultThreshold}
	if settingsService == nil {
		return d
	}
	settings, err := settingsService.Get()
	if err != nil {
		return d
	}
	if settings.Matching.TopK > 0 {
		d.TopK = settings.Matching.TopK
	}
	if settings.Matching.Threshold > 0 {
		d.Threshold = settings.Matching.Threshold
	}
	return d
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if matchingService == nil && engineErr != nil {
		return unavailable("matching service")
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Matching: matchingService,
		Records:  recordService,
		Explain:  explainService,
		Defaults: configuredMatchDefaults(),
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
