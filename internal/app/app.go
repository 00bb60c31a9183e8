package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/common"
	"github.com/responsahq/responsa/internal/handlers"
	"github.com/responsahq/responsa/internal/interfaces"
	"github.com/responsahq/responsa/internal/services/extract"
	"github.com/responsahq/responsa/internal/services/llm"
	"github.com/responsahq/responsa/internal/services/pipeline"
	"github.com/responsahq/responsa/internal/services/prompt"
	"github.com/responsahq/responsa/internal/services/search"
	"github.com/responsahq/responsa/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Inference
	Generator interfaces.Generator
	Invoker   *llm.Invoker

	// Services
	Extractor       *extract.Service
	PromptBuilder   *prompt.Builder
	PipelineService *pipeline.Service
	Sweeper         *pipeline.Sweeper
	SearchService   *search.Service

	// HTTP handlers
	DocumentHandler *handlers.DocumentHandler
	SearchHandler   *handlers.SearchHandler
	PolicyHandler   *handlers.PolicyHandler
	ActivityHandler *handlers.ActivityHandler
	StatusHandler   *handlers.StatusHandler
}

// New wires up storage, inference, services and handlers
func New(ctx context.Context, config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	generator, err := llm.NewGenerator(ctx, &config.LLM, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize inference transport: %w", err)
	}

	invoker := llm.NewInvoker(generator, config.LLM.Models, interfaces.GenerationParams{
		MaxNewTokens:   config.LLM.MaxNewTokens,
		Temperature:    config.LLM.Temperature,
		ReturnFullText: false,
	}, config.LLM.MaxConcurrent, logger)

	extractor := extract.NewService(logger)
	builder := prompt.NewBuilder(config.LLM.ContextCeiling)

	pipelineService := pipeline.NewService(
		storageManager.DocumentStorage(),
		storageManager.ActivityStorage(),
		extractor,
		builder,
		invoker,
		&config.Upload,
		logger,
	)

	sweeper := pipeline.NewSweeper(pipelineService, config.Sweeper.PendingAge, logger)

	searchService := search.NewService(
		storageManager.PolicyStorage(),
		storageManager.SearchQueryStorage(),
		storageManager.ActivityStorage(),
		builder,
		invoker,
		logger,
	)

	app := &App{
		Config:          config,
		Logger:          logger,
		StorageManager:  storageManager,
		Generator:       generator,
		Invoker:         invoker,
		Extractor:       extractor,
		PromptBuilder:   builder,
		PipelineService: pipelineService,
		Sweeper:         sweeper,
		SearchService:   searchService,
		DocumentHandler: handlers.NewDocumentHandler(pipelineService, storageManager.DocumentStorage(), logger),
		SearchHandler:   handlers.NewSearchHandler(searchService, pipelineService, logger),
		PolicyHandler:   handlers.NewPolicyHandler(storageManager.PolicyStorage(), logger),
		ActivityHandler: handlers.NewActivityHandler(storageManager.ActivityStorage(), storageManager.SearchQueryStorage(), logger),
		StatusHandler:   handlers.NewStatusHandler(storageManager.DocumentStorage(), storageManager.PolicyStorage(), logger),
	}

	return app, nil
}

// Start launches background components
func (a *App) Start() error {
	if a.Config.Sweeper.Enabled {
		if err := a.Sweeper.Start(a.Config.Sweeper.Schedule); err != nil {
			return fmt.Errorf("failed to start sweeper: %w", err)
		}
		// Pick up documents left pending by a previous run
		a.Sweeper.RunNow()
	}
	return nil
}

// Close shuts down background components and releases resources
func (a *App) Close() error {
	if a.Sweeper != nil {
		a.Sweeper.Stop()
	}
	if a.Generator != nil {
		if err := a.Generator.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close inference transport")
		}
	}
	if a.StorageManager != nil {
		return a.StorageManager.Close()
	}
	return nil
}
