package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/documind/internal/adapters/driven/ai"
	"github.com/custodia-labs/documind/internal/adapters/driven/config/file"
	"github.com/custodia-labs/documind/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/documind/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/documind/internal/adapters/driving/cli"
	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/core/services"
	"github.com/custodia-labs/documind/internal/loader"
	"github.com/custodia-labs/documind/internal/logger"
	"github.com/custodia-labs/documind/internal/postprocessors/chunker"
)

// build wires the services a command asked for. Each level includes the
// ones below it: settings, then the store, then the AI providers.
func build(_ context.Context, opts cli.Options) (*cli.Services, error) {
	configStore, err := openConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	if err := configStore.LoadEnv(".env"); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	prompts, err := file.NewPromptStore(filepath.Join(filepath.Dir(configStore.Path()), "prompts"))
	if err != nil {
		return nil, fmt.Errorf("opening prompts: %w", err)
	}

	svc := &cli.Services{
		Settings:   settingsService,
		Prompts:    prompts,
		ConfigPath: configStore.Path(),
	}
	if !opts.Needs.Includes(cli.NeedStore) {
		return svc, nil
	}

	store, err := openStore(settings.Store)
	if err != nil {
		return nil, err
	}
	closers := []func() error{store.Close}
	svc.Close = func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	docLoader, err := loader.NewDefault(*settings)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("building loader: %w", err)
	}
	svc.Supports = docLoader.Supports
	svc.Documents = services.NewDocumentService(store, docLoader)

	if !opts.Needs.Includes(cli.NeedAI) {
		// stats and document commands never embed or generate
		svc.Ingest = services.NewIngestService(docLoader, store, nil, nil)
		return svc, nil
	}

	aiServices, err := ai.Init(settings)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	closers = append(closers, func() error {
		aiServices.Close()
		return nil
	})

	var summaries driving.SummaryService
	if aiServices.SummaryLLM != nil {
		summarizer := services.NewSummarizer(aiServices.SummaryLLM,
			chunker.NewSplitter(services.SummaryChunkSize, services.SummaryChunkOverlap))
		summarizer.SetTemperature(settings.Summarizer.Temperature)
		summarizer.SetPromptStore(prompts)
		summaries = summarizer
	}

	ingest := services.NewIngestService(docLoader, store, aiServices.EmbeddingService, summaries)
	if aiServices.EntityExtractor != nil {
		ingest.SetEntityExtractor(aiServices.EntityExtractor)
	}

	qa := services.NewQAService(store, aiServices.EmbeddingService, aiServices.LLMService)
	qa.SetPromptStore(prompts)
	topK := settings.QA.TopK
	if opts.TopK > 0 {
		topK = opts.TopK
	}
	qa.SetTopK(topK)

	svc.Ingest = ingest
	svc.QA = qa
	return svc, nil
}

func openConfigStore(path string) (*file.ConfigStore, error) {
	if path != "" {
		return file.NewConfigStoreAt(path)
	}
	return file.NewConfigStore("")
}

func openStore(settings domain.StoreSettings) (driven.VectorStore, error) {
	switch settings.Backend {
	case domain.StoreBackendMemory:
		logger.Info("Using in-memory store; documents are lost on exit")
		return memory.NewVectorStore(), nil
	case domain.StoreBackendSQLite, "":
		store, err := sqlite.NewStore(settings.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("Opened store %s", store.Path())
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", domain.ErrInvalidInput, settings.Backend)
	}
}
