package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check engine health",
	Long:  `Checks the embedding model, vector index, record store and LLM.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusService == nil {
		return unavailable("status service")
	}

	health, err := statusService.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if statusJSON {
		return printJSON(cmd, health)
	}

	cmd.Printf("Status: %s\n\n", health.Status)
	cmd.Printf("  Embedding model: %s\n", health.EmbeddingModel)
	if health.LLMModel != "" {
		cmd.Printf("  LLM model:       %s\n", health.LLMModel)
	}
	cmd.Printf("  Indexed:         %d résumés (%d dimensions)\n", health.Index.TotalVectors, health.Index.Dimension)
	cmd.Println()

	names := make([]string, 0, len(health.Checks))
	for name := range health.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mark := "ok"
		if !health.Checks[name] {
			mark = "FAILED"
		}
		cmd.Printf("  %-16s %s\n", name, mark)
	}

	if health.Status != domain.HealthHealthy {
		cmd.Println("\nRun 'recruitr settings' to review the configuration.")
	}
	return nil
}
