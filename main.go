package main

import (
	"fmt"
	"os"

	"github.com/jhaShwet/content-generation/internal/api"
	"github.com/jhaShwet/content-generation/internal/completion"
	"github.com/jhaShwet/content-generation/internal/config"
	"github.com/jhaShwet/content-generation/internal/logger"
	"github.com/jhaShwet/content-generation/internal/service"
	"github.com/jhaShwet/content-generation/internal/store"
	"github.com/jhaShwet/content-generation/internal/websearch"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	log = log.With(logger.String("service", cfg.Service.Name))

	log.Info("Starting content generation service",
		logger.String("name", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	// The API key is only required by the generate operation; its absence
	// is reported there, not at startup.
	if cfg.Completion.APIKey == "" {
		log.Warn("Completion API key not configured, generation will fail until AI21_API_KEY is set")
	}

	// Load the content store
	contentStore := store.New(cfg.Store.Path, log)

	// Initialize external clients and the content service
	completionClient := completion.NewClient(cfg.Completion)
	searchClient := websearch.NewClient(cfg.Search)
	contentService := service.NewContentService(completionClient, searchClient, contentStore, cfg, log)
	log.Info("Content service initialized")

	// Create and run the HTTP server with graceful shutdown
	handler := api.NewHandler(contentService, contentStore, log)
	server := api.NewServer(handler, cfg, log)

	if runErr := server.Run(); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return 1
	}

	log.Info("Content generation service exited cleanly")
	return 0
}
