package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

var (
	searchLimit         int
	searchSkills        []string
	searchMinExperience int
	searchJSON          bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Keyword search over résumés",
	Long: `Runs a keyword (BM25) search over résumé text, skills, education and
certifications. Unlike 'match', results are ranked by term relevance, not
semantic similarity.

The query may be omitted when --skill or --min-experience filters are given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringSliceVar(&searchSkills, "skill", nil, "require a skill (repeatable)")
	searchCmd.Flags().IntVar(&searchMinExperience, "min-experience", 0, "minimum stated years of experience")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return unavailable("search service")
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	opts := domain.SearchOptions{
		Limit:         searchLimit,
		Skills:        searchSkills,
		MinExperience: searchMinExperience,
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i].Record
		name := r.Filename
		if name == "" {
			name = r.ID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, name, results[i].Score)
		cmd.Printf("      ID: %s  Experience: %s\n", r.ID, formatExperience(r.ExperienceYears))
		if len(results[i].Highlights) > 0 {
			cmd.Printf("      %s\n", strings.TrimSpace(results[i].Highlights[0]))
		}
		cmd.Println()
	}

	return nil
}
