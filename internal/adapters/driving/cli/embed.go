package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var embedJSON bool

var embedCmd = &cobra.Command{
	Use:   "embed [text]",
	Short: "Print the embedding for a piece of text",
	Long: `Embeds text with the configured model and prints the unit-length vector.
Useful for checking which model is loaded and comparing providers.`,
	Args: cobra.ExactArgs(1),
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().BoolVar(&embedJSON, "json", false, "output the full vector as JSON")
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	if embedService == nil {
		return unavailable("embed service")
	}

	vec, err := embedService.Embed(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}

	if embedJSON {
		return printJSON(cmd, struct {
			Model     string    `json:"model"`
			Dimension int       `json:"dimension"`
			Embedding []float32 `json:"embedding"`
		}{embedService.ModelName(), len(vec), vec})
	}

	cmd.Printf("Model:     %s\n", embedService.ModelName())
	cmd.Printf("Dimension: %d\n", len(vec))
	preview := vec[:min(8, len(vec))]
	cmd.Printf("Vector:    %v", preview)
	if len(vec) > len(preview) {
		cmd.Print(" ...")
	}
	cmd.Println()
	return nil
}
