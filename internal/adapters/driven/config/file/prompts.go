package file

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation: files are only created when first accessed,
// not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptMatchExplanation: `You are a recruitment assistant. Read the job description and the résumé below and explain briefly why the candidate matches.

JOB DESCRIPTION:
%s

RESUME:
%s

SIMILARITY SCORE: %.2f%s

Answer in 2-3 professional sentences covering the strongest matching qualifications, how the candidate's experience lines up with the role, and why they would fit. Be specific and concise.`,

	driven.PromptJobAnalysis: `Analyse the job description below and extract its key requirements.

JOB DESCRIPTION:
%s

Reply using exactly these five lines and nothing else:
REQUIRED_SKILLS: comma-separated technical skills
EXPERIENCE: years required (number or range)
EDUCATION: education requirements
RESPONSIBILITIES: top 3 responsibilities, comma-separated
NICE_TO_HAVE: comma-separated optional skills`,
}

// formatVerb matches a single fmt verb, ignoring literal %%.
var formatVerb = regexp.MustCompile(`%[-+# 0]*\d*(?:\.\d+)?[a-zA-Z]`)

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.recruitr/prompts/.
//
// The constructor does not perform any I/O; directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".recruitr", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to the embedded default if the file is missing or its
// placeholders no longer match the default's.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// No lock held during I/O.
	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	if def, ok := defaultPrompts[name]; ok && !samePlaceholders(def, prompt) {
		logger.Warn("prompt %s.txt has placeholders %v, expected %v; using built-in prompt",
			name, placeholders(prompt), placeholders(def))
		prompt = def
	}

	// Keep a concurrent loader's value if it won.
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// DefaultPrompt returns the embedded prompt for name.
func DefaultPrompt(name string) (string, bool) {
	p, ok := defaultPrompts[name]
	return p, ok
}

func placeholders(tmpl string) []string {
	return formatVerb.FindAllString(strings.ReplaceAll(tmpl, "%%", ""), -1)
}

func samePlaceholders(a, b string) bool {
	pa, pb := placeholders(a), placeholders(b)
	if len(pa) != len(pb) {
		return false
	}
	for i := range pa {
		if pa[i][len(pa[i])-1] != pb[i][len(pb[i])-1] {
			return false
		}
	}
	return true
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Existing files are user edits and are never overwritten.
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# Recruitr Prompts

Prompts used when an LLM provider is configured.

## Files

- ` + "`match_explanation.txt`" + ` - Explains why a résumé matches a job
- ` + "`job_analysis.txt`" + ` - Extracts requirements from a job description

## Customisation

Edit any file to change the wording. Changes take effect on the next command.

## Format Placeholders

Prompts are Go format strings. Keep every placeholder, in order:

- match_explanation: ` + "`%s`" + ` job, ` + "`%s`" + ` résumé, ` + "`%.2f`" + ` score, ` + "`%s`" + ` matching skills line
- job_analysis: ` + "`%s`" + ` job

A file whose placeholders differ from the built-in prompt is ignored with a warning.
job_analysis replies must keep the REQUIRED_SKILLS/EXPERIENCE/EDUCATION/RESPONSIBILITIES/NICE_TO_HAVE lines.
`
	return os.WriteFile(path, []byte(content), 0600)
}
