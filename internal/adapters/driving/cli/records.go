package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

var (
	recordsLimit  int
	recordsOffset int
	recordsJSON   bool
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Browse ingested résumés",
	Long:  `List ingested résumés or show the structured fields of one.`,
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List résumés, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRecordsList,
}

var recordsShowCmd = &cobra.Command{
	Use:   "show [record-id]",
	Short: "Show a résumé's extracted fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsShow,
}

func init() {
	recordsListCmd.Flags().IntVarP(&recordsLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of résumés")
	recordsListCmd.Flags().IntVar(&recordsOffset, "offset", 0, "number of résumés to skip")
	recordsCmd.PersistentFlags().BoolVar(&recordsJSON, "json", false, "output as JSON")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsShowCmd)
	rootCmd.AddCommand(recordsCmd)
}

func runRecordsList(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return unavailable("record service")
	}

	records, err := recordService.List(cmd.Context(), recordsLimit, recordsOffset)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if recordsJSON {
		return printJSON(cmd, records)
	}

	if len(records) == 0 {
		cmd.Println("No résumés ingested yet.")
		return nil
	}

	for _, r := range records {
		cmd.Printf("  %s\n", r.ID)
		cmd.Printf("    File:       %s\n", r.Filename)
		cmd.Printf("    Ingested:   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("    Experience: %s\n", formatExperience(r.ExperienceYears))
		if len(r.Skills) > 0 {
			cmd.Printf("    Skills:     %s\n", joinLimited(r.Skills, 6))
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d résumés\n", len(records))
	return nil
}

func runRecordsShow(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return unavailable("record service")
	}

	r, err := recordService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if recordsJSON {
		return printJSON(cmd, r)
	}

	printRecord(cmd, r)
	return nil
}

func printRecord(cmd *cobra.Command, r *domain.StructuredRecord) {
	cmd.Printf("Résumé: %s\n\n", r.ID)
	cmd.Printf("  File:        %s\n", r.Filename)
	cmd.Printf("  Ingested:    %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Experience:  %s\n", formatExperience(r.ExperienceYears))

	printList(cmd, "Skills", r.Skills)
	printList(cmd, "Education", r.Education)
	printList(cmd, "Certifications", r.Certifications)
	printList(cmd, "Languages", r.Languages)

	if len(r.ContactInfo) > 0 {
		cmd.Println("\n  Contact:")
		for _, ch := range []domain.ContactChannel{
			domain.ContactEmail, domain.ContactPhone, domain.ContactLinkedIn, domain.ContactGitHub,
		} {
			if v, ok := r.ContactInfo[ch]; ok {
				cmd.Printf("    %s: %s\n", ch, v)
			}
		}
	}

	for _, kind := range domain.AllSectionKinds() {
		text, ok := r.Sections[kind]
		if !ok || text == "" {
			continue
		}
		cmd.Printf("\n  [%s]\n", strings.ToUpper(string(kind)))
		cmd.Printf("    %s\n", strings.ReplaceAll(text, "\n", "\n    "))
	}
}

func printList(cmd *cobra.Command, label string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Printf("  %-13s%s\n", label+":", strings.Join(items, ", "))
}
