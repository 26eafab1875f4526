// Command recruitr indexes résumés and ranks them against job descriptions.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/recruitr/internal/adapters/driven/ai"
	"github.com/custodia-labs/recruitr/internal/adapters/driven/config/file"
	"github.com/custodia-labs/recruitr/internal/adapters/driven/keyword"
	"github.com/custodia-labs/recruitr/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/recruitr/internal/adapters/driven/vectorindex/flat"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/cli"
	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/core/services"
	"github.com/custodia-labs/recruitr/internal/extractor"
	"github.com/custodia-labs/recruitr/internal/logger"
	"github.com/custodia-labs/recruitr/internal/normalisers"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	home, err := homeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening config: %v\n", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	svc := cli.Services{Settings: settingsService}

	e, err := openEngine(ctx, home, settingsService)
	if err != nil {
		// Settings and version still work so the user can fix the configuration.
		// Commands that need the engine report err themselves.
		logger.Debug("engine unavailable: %v", err)
		svc.EngineErr = err
	} else {
		defer e.close()
		svc.Matching = e.matching
		svc.Records = e.records
		svc.Search = e.search
		svc.Explain = e.explain
		svc.Status = e.status
		svc.Embed = e.embed
	}

	cli.SetServices(svc)
	cli.SetVersion(version)

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

// homeDir returns $RECRUITR_HOME or ~/.recruitr.
func homeDir() (string, error) {
	if dir := os.Getenv("RECRUITR_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".recruitr"), nil
}

// engine holds the wired services and the resources they own.
type engine struct {
	matching *services.MatchingService
	records  *services.RecordService
	search   *services.SearchService
	explain  *services.ExplanationService
	status   *services.StatusService
	embed    *services.EmbedService

	closers []func() error
}

func (e *engine) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			logger.Debug("close: %v", err)
		}
	}
}

func openEngine(ctx context.Context, home string, settingsService *services.SettingsService) (*engine, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	dataDir := filepath.Join(home, "data")
	indexDir := settings.Index.Dir
	if indexDir == "" {
		indexDir = filepath.Join(dataDir, "index")
	}

	e := &engine{}
	ok := false
	defer func() {
		if !ok {
			e.close()
		}
	}()

	gen, err := ai.LoadEmbeddingService(ctx, &settings.Embedding)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, gen.Close)

	index, err := flat.Open(indexDir, gen.Dimensions())
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentState) {
			return nil, fmt.Errorf("%w. Restore the previous embedding model or remove %s and re-ingest", err, indexDir)
		}
		return nil, err
	}
	e.closers = append(e.closers, index.Close)

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, store.Close)
	recordStore := store.RecordStore()

	keywords, err := keyword.Open(filepath.Join(dataDir, "records.bleve"))
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, keywords.Close)

	prompts, err := file.NewPromptStore(filepath.Join(home, "prompts"))
	if err != nil {
		return nil, err
	}

	var llm driven.LLMService
	if svc, err := ai.CreateLLMService(ctx, &settings.LLM); err != nil {
		logger.Warn("LLM unavailable, explanations use a template: %v", err)
	} else if svc != nil {
		llm = svc
		e.closers = append(e.closers, svc.Close)
	}

	e.explain = services.NewExplanationService(llm, prompts)
	e.records = services.NewRecordService(recordStore, index)
	e.search = services.NewSearchService(keywords, e.records)
	e.status = services.NewStatusService(gen, index, recordStore, llm)
	e.embed = services.NewEmbedService(gen)

	e.matching = services.NewMatchingService(normalisers.NewDefaultRegistry(), extractor.New(), gen, index)
	e.matching.SetRecordStore(recordStore)
	e.matching.SetSearchEngine(keywords)
	e.matching.SetExplainer(e.explain)
	e.matching.SetMaxFileSize(settings.Ingest.MaxFileSize)
	e.matching.SetDefaultTopK(settings.Matching.TopK)

	ok = true
	return e, nil
}
