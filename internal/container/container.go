package container

import (
	"fmt"
	"net/http"

	"go-photometry/internal/analyzer"
	"go-photometry/internal/config"
	"go-photometry/internal/factory"
	"go-photometry/internal/logger"
	"go-photometry/internal/observer"
	"go-photometry/internal/repository"
	"go-photometry/internal/service"
	"go-photometry/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config     *config.Config
	engine     analyzer.ImageAnalyzer
	pool       *analyzer.WorkerPool
	repository repository.ImageRepository
	service    service.PhotometryService
	handler    http.Handler
}

// NewContainer builds the dependency graph from a loaded config
func NewContainer(cfg *config.Config) (*Container, error) {
	storageFactory := factory.NewStorageFactory(cfg)

	httpFetcher, err := storageFactory.CreateStorage(factory.HTTPStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to create http storage: %w", err)
	}
	localFetcher, err := storageFactory.CreateStorage(factory.LocalStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to create local storage: %w", err)
	}

	repo := repository.NewSourceRepository(httpFetcher, nil, localFetcher)
	if cfg.AzureEnabled() {
		azureFetcher, err := storageFactory.CreateStorage(factory.AzureStorage)
		if err != nil {
			return nil, fmt.Errorf("failed to create azure storage: %w", err)
		}
		repo = repository.NewSourceRepository(httpFetcher, azureFetcher, localFetcher)
	}

	engine := analyzer.NewImageAnalyzer()

	pool := analyzer.NewWorkerPool(cfg.AnalysisWorkers)
	pool.Start()

	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))

	svc := service.NewPhotometryService(repo, engine, pool, events)
	handler := transport.NewHandler(svc, cfg)

	return &Container{
		config:     cfg,
		engine:     engine,
		pool:       pool,
		repository: repo,
		service:    svc,
		handler:    handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases pooled resources
func (c *Container) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}
