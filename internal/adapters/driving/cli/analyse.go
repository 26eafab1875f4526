package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

var analyseJSON bool

var analyseCmd = &cobra.Command{
	Use:   "analyse",
	Short: "Extract requirements from a job description",
	Long: `Asks the configured LLM to break a job description into required
skills, experience, education, responsibilities and nice-to-haves.

Takes the same --job, --title, --description and --requirements inputs as
'match'. Requires an LLM provider (see 'recruitr settings llm').`,
	Aliases: []string{"analyze"},
	Args:    cobra.NoArgs,
	RunE:    runAnalyse,
}

func init() {
	analyseCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "YAML or JSON job description file")
	analyseCmd.Flags().StringVarP(&matchTitle, "title", "t", "", "job title")
	analyseCmd.Flags().StringVarP(&matchDescription, "description", "d", "", "job description")
	analyseCmd.Flags().StringVar(&matchRequirements, "requirements", "", "additional requirements")
	analyseCmd.Flags().BoolVar(&analyseJSON, "json", false, "output analysis as JSON")
	rootCmd.AddCommand(analyseCmd)
}

func runAnalyse(cmd *cobra.Command, _ []string) error {
	if explainService == nil {
		return unavailable("explanation service")
	}

	job, err := buildJob(cmd)
	if err != nil {
		return err
	}

	analysis, err := explainService.AnalyseJob(cmd.Context(), job)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyseJSON {
		return printJSON(cmd, analysis)
	}
	outputAnalysis(cmd, analysis)
	return nil
}

func outputAnalysis(cmd *cobra.Command, a *domain.JobAnalysis) {
	printBullets(cmd, "Required skills", a.RequiredSkills)
	if a.Experience != "" {
		cmd.Printf("Experience: %s\n\n", a.Experience)
	}
	if a.Education != "" {
		cmd.Printf("Education: %s\n\n", a.Education)
	}
	printBullets(cmd, "Responsibilities", a.Responsibilities)
	printBullets(cmd, "Nice to have", a.NiceToHave)
}

func printBullets(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Printf("%s:\n", title)
	for _, item := range items {
		cmd.Printf("  - %s\n", strings.TrimSpace(item))
	}
	cmd.Println()
}
