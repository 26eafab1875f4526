package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recruitr/internal/connectors/filesystem"
	"github.com/custodia-labs/recruitr/internal/logger"
)

var watchInitial bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest résumés as they appear in a directory",
	Long: `Watches a directory and ingests every résumé file (.pdf, .docx, .txt,
.md or .html) that is created or rewritten in it. Runs until interrupted.

Rewriting a file ingests it again as a new résumé; the index is append-only.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitial, "initial", false, "ingest files already in the directory first")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if matchingService == nil {
		return unavailable("matching service")
	}

	dir := args[0]
	ctx := cmd.Context()

	ingest := func(path string) {
		u, err := filesystem.ReadUpload(path)
		if err != nil {
			logger.Warn("%v", err)
			return
		}
		r, err := matchingService.Ingest(ctx, u.Content, u.Filename)
		if err != nil {
			cmd.PrintErrf("  ✗ %s: %v\n", filepath.Base(path), err)
			return
		}
		printIngested(cmd, r)
	}

	if watchInitial {
		files, err := filesystem.Collect([]string{dir})
		if err != nil {
			return err
		}
		for _, f := range files {
			ingest(f)
		}
	}

	cmd.Printf("Watching %s for new résumés (Ctrl+C to stop)\n", dir)
	return filesystem.NewWatcher(dir).Watch(ctx, ingest)
}
