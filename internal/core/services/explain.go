package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
	"github.com/custodia-labs/recruitr/internal/logger"
)

// Ensure ExplanationService implements the interface.
var _ driving.ExplanationService = (*ExplanationService)(nil)

// Prompt input limits, in characters.
const (
	maxJobPromptChars    = 1500
	maxResumePromptChars = 2000
)

// DefaultExplainInterval is the minimum gap between LLM explanation calls.
const DefaultExplainInterval = 100 * time.Millisecond

// fallbackSkillCount is how many skills the templated explanation names.
const fallbackSkillCount = 3

// ExplanationService asks the LLM to justify matches and analyse jobs.
// Without an LLM it falls back to templated text.
type ExplanationService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	limiter *rate.Limiter
}

// NewExplanationService creates a new explanation service.
// The llm parameter is optional (can be nil).
func NewExplanationService(llm driven.LLMService, prompts driven.PromptStore) *ExplanationService {
	return &ExplanationService{
		llm:     llm,
		prompts: prompts,
		limiter: rate.NewLimiter(rate.Every(DefaultExplainInterval), 1),
	}
}

// SetRateLimit replaces the limiter. A zero interval disables throttling.
func (s *ExplanationService) SetRateLimit(interval time.Duration) {
	if interval <= 0 {
		s.limiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	s.limiter = rate.NewLimiter(rate.Every(interval), 1)
}

// Explain justifies a single match. It never fails.
func (s *ExplanationService) Explain(ctx context.Context, job domain.JobDescription, match domain.Match) string {
	if s.llm == nil {
		return FallbackExplanation(match.Score, match.MatchingSkills)
	}

	prompt, err := s.explanationPrompt(job, match)
	if err != nil {
		logger.Warn("explanation prompt: %v", err)
		return FallbackExplanation(match.Score, match.MatchingSkills)
	}

	reply, err := s.generate(ctx, prompt, driven.GenerateOptions{MaxTokens: 256, Temperature: 0.3})
	if err != nil {
		logger.Warn("explain %s: %v", match.Record.ID, err)
		return FallbackExplanation(match.Score, match.MatchingSkills)
	}
	if reply == "" {
		logger.Warn("explain %s: empty reply from %s", match.Record.ID, s.llm.ModelName())
		return FallbackExplanation(match.Score, match.MatchingSkills)
	}

	logger.Debug("Explained %s with %s", match.Record.ID, s.llm.ModelName())
	return reply
}

func (s *ExplanationService) explanationPrompt(job domain.JobDescription, match domain.Match) (string, error) {
	template, err := s.prompts.Load(driven.PromptMatchExplanation)
	if err != nil {
		return "", err
	}

	resume := match.Record.SectionText()
	if strings.TrimSpace(resume) == "" {
		resume = match.Record.RawText
	}

	var skills string
	if len(match.MatchingSkills) > 0 {
		skills = "\nMatching Skills Found: " + strings.Join(match.MatchingSkills, ", ")
	}

	return fmt.Sprintf(template,
		truncate(job.Text(), maxJobPromptChars),
		truncate(resume, maxResumePromptChars),
		match.Score,
		skills,
	), nil
}

// generate calls the LLM behind the rate limiter.
func (s *ExplanationService) generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	reply, err := s.llm.Generate(ctx, prompt, opts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// FallbackExplanation is the templated explanation used when no LLM answer is available.
func FallbackExplanation(score float64, skills []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This candidate shows a %.1f%% match", score*100)

	if len(skills) == 0 {
		b.WriteString(" based on overall profile alignment")
	} else {
		shown := skills
		if len(shown) > fallbackSkillCount {
			shown = shown[:fallbackSkillCount]
		}
		b.WriteString(" with relevant skills including ")
		b.WriteString(strings.Join(shown, ", "))
		if extra := len(skills) - len(shown); extra > 0 {
			fmt.Fprintf(&b, " and %d others", extra)
		}
	}

	b.WriteString(". Review full resume for detailed qualifications.")
	return b.String()
}

// AnalyseJob extracts structured requirements from a job description.
// Returns domain.ErrLLMUnavailable when no LLM is configured. Generation
// failures yield an empty analysis.
func (s *ExplanationService) AnalyseJob(ctx context.Context, job domain.JobDescription) (*domain.JobAnalysis, error) {
	empty := emptyAnalysis()
	if s.llm == nil {
		return empty, fmt.Errorf("analyse job: %w", domain.ErrLLMUnavailable)
	}

	template, err := s.prompts.Load(driven.PromptJobAnalysis)
	if err != nil {
		return empty, fmt.Errorf("analyse job: %w", err)
	}

	reply, err := s.generate(ctx, fmt.Sprintf(template, job.Text()), driven.GenerateOptions{MaxTokens: 512, Temperature: 0.1})
	if err != nil {
		logger.Warn("analyse job: %v", err)
		return empty, nil
	}

	return ParseJobAnalysis(reply), nil
}

// ParseJobAnalysis reads the five labelled lines of a job analysis reply.
// Unlabelled lines are ignored.
func ParseJobAnalysis(reply string) *domain.JobAnalysis {
	analysis := emptyAnalysis()

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch label {
		case "REQUIRED_SKILLS":
			analysis.RequiredSkills = splitList(value)
		case "EXPERIENCE":
			analysis.Experience = value
		case "EDUCATION":
			analysis.Education = value
		case "RESPONSIBILITIES":
			analysis.Responsibilities = splitList(value)
		case "NICE_TO_HAVE":
			analysis.NiceToHave = splitList(value)
		}
	}

	return analysis
}

func emptyAnalysis() *domain.JobAnalysis {
	return &domain.JobAnalysis{
		RequiredSkills:   []string{},
		Responsibilities: []string{},
		NiceToHave:       []string{},
	}
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
