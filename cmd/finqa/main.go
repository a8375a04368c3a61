package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/api"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/api/handlers"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/backend"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/extractor"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/parser"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/service"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/store"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/pkg/config"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting financial document Q&A service")

	// Session state
	docStore := store.New()

	// Extraction pipeline
	docParser := parser.New(appLogger)
	metricExtractor := extractor.New(appLogger)
	docService := service.NewDocumentService(docParser, metricExtractor, docStore, appLogger)

	// Optional generative backend
	var completer backend.Completer
	if cfg.Backend.Enabled {
		switch cfg.Backend.Provider {
		case "openai":
			completer, err = backend.NewOpenAIClient(cfg.Backend.URL, cfg.Backend.Model, cfg.Backend.Token, appLogger)
			if err != nil {
				appLogger.Fatal("Failed to initialize generative backend", zap.Error(err))
			}
		default:
			completer = backend.NewOllamaClient(cfg.Backend.URL, cfg.Backend.Model, cfg.Backend.Timeout, appLogger)
		}
		appLogger.Info("Generative backend enabled",
			zap.String("provider", cfg.Backend.Provider),
			zap.String("model", cfg.Backend.Model),
		)
	}

	qaService := service.NewQAService(docStore, completer, cfg.QA.ConfidenceThreshold, cfg.Backend.Timeout, appLogger)

	// Initialize handlers
	docHandler := handlers.NewDocumentHandler(docService, appLogger)
	questionHandler := handlers.NewQuestionHandler(qaService, appLogger)

	// Setup router
	app := api.SetupRouter(docHandler, questionHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
