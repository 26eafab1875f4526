package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the embedding provider, the explanation LLM and
match defaults.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsMatchingCmd = &cobra.Command{
	Use:   "matching",
	Short: "Set match defaults",
	Long: `Set the default number of matches and the minimum similarity used when
'match' is run without --top-k or --threshold.`,
	RunE: runSettingsMatching,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long: `Configure the embedding provider used to vectorise résumés and jobs.

Changing the provider or model changes the vector dimension. Run
'recruitr rebuild' and re-ingest résumés afterwards.`,
	RunE: runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM used for match explanations and job analysis.`,
	RunE:  runSettingsLLM,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsMatchingCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if len(settings.Embedding.FallbackModels) > 0 {
		cmd.Printf("  Fallbacks: %s\n", strings.Join(settings.Embedding.FallbackModels, ", "))
	}
	if dim, ok := domain.EmbeddingDimensions()[settings.Embedding.Model]; ok {
		cmd.Printf("  Dimensions: %d\n", dim)
	}
	printProviderAccess(cmd, settings.Embedding.Provider, settings.Embedding.BaseURL, settings.Embedding.APIKey)
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[LLM]")
	if settings.LLM.Provider == "" {
		cmd.Println("  Provider: (none, explanations use a template)")
	} else {
		cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
		cmd.Printf("  Model: %s\n", settings.LLM.Model)
		printProviderAccess(cmd, settings.LLM.Provider, settings.LLM.BaseURL, settings.LLM.APIKey)
		cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	}
	cmd.Println()

	cmd.Println("[Matching]")
	cmd.Printf("  Top K: %d\n", settings.Matching.TopK)
	cmd.Printf("  Threshold: %.2f\n", settings.Matching.Threshold)
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Max file size: %d MB\n", settings.Ingest.MaxFileSize/(1024*1024))
	if settings.Index.Dir != "" {
		cmd.Printf("  Index dir: %s\n", settings.Index.Dir)
	}
	cmd.Println()

	if !settings.Embedding.IsConfigured() {
		cmd.Println("Warning: embedding provider is not fully configured.")
		cmd.Println("Run 'recruitr settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printProviderAccess(cmd *cobra.Command, provider domain.AIProvider, baseURL, apiKey string) {
	if provider == domain.AIProviderOllama {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Recruitr Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Configure Embedding Provider")
	cmd.Println("------------------------------------")
	cmd.Println("Embeddings decide how résumés and jobs are compared.")
	cmd.Println()
	if err := configureEmbeddingProvider(cmd, reader); err != nil {
		return err
	}

	cmd.Println("Step 2: Configure LLM Provider")
	cmd.Println("------------------------------")
	cmd.Print("An LLM writes match explanations. Configure one now? [y/N]: ")
	if answer := strings.ToLower(readLine(reader)); answer == "y" || answer == "yes" {
		cmd.Println()
		if err := configureLLMProvider(cmd, reader); err != nil {
			return err
		}
	} else {
		cmd.Println("Skipped. Explanations will use a template.")
		cmd.Println()
	}

	cmd.Println("Step 3: Match Defaults")
	cmd.Println("----------------------")
	if err := configureMatching(cmd, reader); err != nil {
		return err
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are saved.")
	return nil
}

func runSettingsMatching(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return configureMatching(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func configureMatching(cmd *cobra.Command, reader *bufio.Reader) error {
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	topK := settings.Matching.TopK
	cmd.Printf("Number of matches [%d]: ", topK)
	if input := readLine(reader); input != "" {
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid number of matches: %q", input)
		}
		topK = n
	}

	threshold := settings.Matching.Threshold
	cmd.Printf("Minimum similarity, 0 to 1 [%.2f]: ", threshold)
	if input := readLine(reader); input != "" {
		f, err := strconv.ParseFloat(input, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("invalid similarity threshold: %q", input)
		}
		threshold = f
	}

	if err := settingsService.SetMatching(topK, threshold); err != nil {
		return fmt.Errorf("failed to set match defaults: %w", err)
	}

	cmd.Printf("Match defaults: top %d, threshold %.2f\n\n", topK, threshold)
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	return configureEmbeddingProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	return configureLLMProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

// providerStep describes one provider selection prompt.
type providerStep struct {
	kind      string
	providers []domain.AIProvider
	models    map[domain.AIProvider]string
	set       func(provider domain.AIProvider, model, apiKey string) error
	validate  func() error
}

func configureEmbeddingProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	provider, model, err := configureProvider(cmd, reader, providerStep{
		kind:      "Embedding",
		providers: domain.AllEmbeddingProviders(),
		models:    domain.DefaultEmbeddingModels(),
		set:       settingsService.SetEmbeddingProvider,
		validate:  settingsService.ValidateEmbeddingConfig,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	cmd.Println("If the vector dimension changed, run 'recruitr rebuild' and re-ingest résumés.")
	cmd.Println()
	return nil
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	provider, model, err := configureProvider(cmd, reader, providerStep{
		kind:      "LLM",
		providers: domain.AllLLMProviders(),
		models:    domain.DefaultLLMModels(),
		set:       settingsService.SetLLMProvider,
		validate:  settingsService.ValidateLLMConfig,
	})
	if err != nil {
		return err
	}

	cmd.Printf("LLM provider configured: %s (%s)\n\n", provider.Description(), model)
	return nil
}

func configureProvider(cmd *cobra.Command, reader *bufio.Reader, step providerStep) (domain.AIProvider, string, error) {
	cmd.Printf("Select %s Provider\n", step.kind)
	for i, p := range step.providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	provider := step.providers[parseChoice(readLine(reader), len(step.providers), 1)-1]

	defaultModel := step.models[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key (blank to use the environment): ")
		apiKey = readPassword(reader)
		cmd.Println()
	}

	if err := step.set(provider, model, apiKey); err != nil {
		return "", "", fmt.Errorf("failed to configure %s provider: %w", strings.ToLower(step.kind), err)
	}

	cmd.Print("Validating configuration... ")
	if err := step.validate(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return "", "", fmt.Errorf("%s configuration validation failed: %w", strings.ToLower(step.kind), err)
	}
	cmd.Println("OK")

	return provider, model, nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo on a terminal, otherwise from reader.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
