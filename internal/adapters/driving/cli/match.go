package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

var (
	matchJobFile      string
	matchTitle        string
	matchDescription  string
	matchRequirements string
	matchSkills       []string
	matchTopK         int
	matchThreshold    float64
	matchExplain      bool
	matchJSON         bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank résumés against a job description",
	Long: `Embeds a job description and returns the most similar indexed résumés.

The job can be given with flags or loaded from a YAML (or JSON) file:

  title: Senior Backend Engineer
  description: Build and operate Go services.
  requirements: 5+ years of experience
  required_skills: [Go, PostgreSQL, Kubernetes]

Flags override fields loaded from --job. When --top-k or --threshold are
omitted the defaults from 'recruitr settings' apply.`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "YAML or JSON job description file")
	matchCmd.Flags().StringVarP(&matchTitle, "title", "t", "", "job title")
	matchCmd.Flags().StringVarP(&matchDescription, "description", "d", "", "job description")
	matchCmd.Flags().StringVar(&matchRequirements, "requirements", "", "additional requirements")
	matchCmd.Flags().StringSliceVarP(&matchSkills, "skills", "s", nil, "required skills, comma separated")
	matchCmd.Flags().IntVarP(&matchTopK, "top-k", "k", domain.DefaultTopK, "maximum number of matches")
	matchCmd.Flags().Float64Var(&matchThreshold, "threshold", domain.DefaultThreshold, "minimum similarity (0-1)")
	matchCmd.Flags().BoolVarP(&matchExplain, "explain", "e", false, "explain every match")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if matchingService == nil {
		return unavailable("matching service")
	}

	job, err := buildJob(cmd)
	if err != nil {
		return err
	}

	query := domain.MatchQuery{
		Job:       job,
		TopK:      matchTopK,
		Threshold: matchThreshold,
		Explain:   matchExplain,
	}
	applyMatchDefaults(cmd, &query)

	resp, err := matchingService.QueryMatches(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if matchJSON {
		return printJSON(cmd, resp)
	}
	return outputMatchTable(cmd, resp)
}

// buildJob merges the --job file with explicit flags.
func buildJob(cmd *cobra.Command) (domain.JobDescription, error) {
	var job domain.JobDescription

	if matchJobFile != "" {
		loaded, err := loadJobFile(matchJobFile)
		if err != nil {
			return job, err
		}
		job = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		job.Title = matchTitle
	}
	if flags.Changed("description") {
		job.Description = matchDescription
	}
	if flags.Changed("requirements") {
		job.Requirements = matchRequirements
	}
	if flags.Changed("skills") {
		job.RequiredSkills = matchSkills
	}

	if strings.TrimSpace(job.Title) == "" && strings.TrimSpace(job.Description) == "" {
		return job, errors.New("a job title or description is required (use --title, --description or --job)")
	}
	return job, nil
}

func loadJobFile(path string) (domain.JobDescription, error) {
	var job domain.JobDescription

	data, err := os.ReadFile(path)
	if err != nil {
		return job, fmt.Errorf("failed to read job file: %w", err)
	}
	if err := yaml.Unmarshal(data, &job); err != nil {
		return job, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}
	return job, nil
}

// applyMatchDefaults replaces unset --top-k and --threshold with configured defaults.
func applyMatchDefaults(cmd *cobra.Command, query *domain.MatchQuery) {
	if settingsService == nil {
		return
	}
	settings, err := settingsService.Get()
	if err != nil {
		return
	}
	if !cmd.Flags().Changed("top-k") && settings.Matching.TopK > 0 {
		query.TopK = settings.Matching.TopK
	}
	if !cmd.Flags().Changed("threshold") {
		query.Threshold = settings.Matching.Threshold
	}
}

func outputMatchTable(cmd *cobra.Command, resp *domain.MatchResponse) error {
	cmd.Printf("Job: %s\n", resp.JobTitle)
	cmd.Printf("Searched %d résumés in %s\n\n", resp.TotalResumes, formatDuration(resp.ProcessingTime))

	if len(resp.Matches) == 0 {
		cmd.Println("No matches above the threshold.")
		return nil
	}

	for i := range resp.Matches {
		m := &resp.Matches[i]
		cmd.Printf("  [%d] %s  %s (%.1f%%)\n", i+1, m.Record.Filename, m.Record.ID, m.Score*100)
		if email := m.Record.Email(); email != "" {
			cmd.Printf("      Contact: %s\n", email)
		}
		cmd.Printf("      Experience: %s\n", formatExperience(m.Record.ExperienceYears))
		if len(m.MatchingSkills) > 0 {
			cmd.Printf("      Matching skills: %s\n", strings.Join(m.MatchingSkills, ", "))
		}
		if m.Explanation != "" {
			cmd.Printf("      %s\n", m.Explanation)
		}
		cmd.Println()
	}
	return nil
}
