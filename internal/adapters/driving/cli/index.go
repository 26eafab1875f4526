package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	statsJSON  bool
	rebuildYes bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Discard the index and start empty",
	Long: `Rebuilds the vector index from scratch.

Stored vectors cannot be re-derived without the original files, so every
indexed résumé is discarded. Re-ingest the files afterwards to restore
matching.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [record-id]",
	Short: "Delete a résumé",
	Long: `Deleting a single résumé is not supported: the vector index is
append-only. Use 'recruitr rebuild' and re-ingest the résumés to keep.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rebuildCmd.Flags().BoolVarP(&rebuildYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(rebuildCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if matchingService == nil {
		return unavailable("matching service")
	}

	stats, err := matchingService.IndexStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read index stats: %w", err)
	}

	if statsJSON {
		return printJSON(cmd, stats)
	}

	cmd.Println("Vector Index")
	cmd.Println("============")
	cmd.Printf("  Vectors:        %d\n", stats.TotalVectors)
	cmd.Printf("  Records:        %d\n", stats.MetadataCount)
	cmd.Printf("  Dimension:      %d\n", stats.Dimension)
	cmd.Printf("  Vector file:    %s\n", yesNo(stats.IndexFileExists))
	cmd.Printf("  Metadata file:  %s\n", yesNo(stats.MetadataFileExists))
	return nil
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	if matchingService == nil {
		return unavailable("matching service")
	}

	if !rebuildYes {
		cmd.Print("This discards every indexed résumé. Continue? [y/N]: ")
		answer := strings.ToLower(readLine(bufio.NewReader(cmd.InOrStdin())))
		if answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	report, err := matchingService.RebuildIndex(cmd.Context())
	if err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	if report.Lossy {
		cmd.Printf("Discarded %d résumés. Re-ingest them to restore matching.\n", report.Discarded)
		return nil
	}
	cmd.Println("Index was already empty.")
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if matchingService == nil {
		return unavailable("matching service")
	}
	if err := matchingService.DeleteRecord(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("cannot delete %s: %w", args[0], err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
