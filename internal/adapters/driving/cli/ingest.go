package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recruitr/internal/connectors/filesystem"
	"github.com/custodia-labs/recruitr/internal/core/domain"
)

var (
	ingestBatch bool
	ingestJSON  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path...]",
	Short: "Ingest résumé files",
	Long: `Parses, extracts and indexes résumé files.

Directories are searched recursively for .pdf, .docx, .txt, .md and
.html files.
By default every file is ingested on its own and failures are reported
without stopping the run. With --batch all files are indexed in a single
write: if any file fails, nothing is indexed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestBatch, "batch", false, "index all files atomically")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output ingested records as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if matchingService == nil {
		return unavailable("matching service")
	}

	files, err := filesystem.Collect(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cmd.Println("No résumé files found.")
		return nil
	}

	if ingestBatch {
		return ingestAll(cmd, files)
	}
	return ingestEach(cmd, files)
}

func ingestAll(cmd *cobra.Command, files []string) error {
	uploads := make([]domain.Upload, 0, len(files))
	for _, f := range files {
		u, err := filesystem.ReadUpload(f)
		if err != nil {
			return err
		}
		uploads = append(uploads, u)
	}

	records, err := matchingService.IngestBatch(cmd.Context(), uploads)
	if err != nil {
		return fmt.Errorf("batch ingest failed: %w", err)
	}

	if ingestJSON {
		return printJSON(cmd, records)
	}
	for _, r := range records {
		printIngested(cmd, r)
	}
	cmd.Printf("\nIngested %d résumés.\n", len(records))
	return nil
}

func ingestEach(cmd *cobra.Command, files []string) error {
	var (
		records []*domain.StructuredRecord
		failed  int
	)

	for _, f := range files {
		u, err := filesystem.ReadUpload(f)
		if err == nil {
			var r *domain.StructuredRecord
			if r, err = matchingService.Ingest(cmd.Context(), u.Content, u.Filename); err == nil {
				records = append(records, r)
				if !ingestJSON {
					printIngested(cmd, r)
				}
				continue
			}
		}
		failed++
		cmd.PrintErrf("  ✗ %s: %v\n", filepath.Base(f), err)
	}

	if ingestJSON {
		if records == nil {
			records = []*domain.StructuredRecord{}
		}
		if err := printJSON(cmd, records); err != nil {
			return err
		}
	} else {
		cmd.Printf("\nIngested %d of %d résumés.\n", len(records), len(files))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func printIngested(cmd *cobra.Command, r *domain.StructuredRecord) {
	cmd.Printf("  ✓ %s  %s\n", r.ID, r.Filename)
	if len(r.Skills) > 0 {
		cmd.Printf("      Skills: %s\n", joinLimited(r.Skills, 8))
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
