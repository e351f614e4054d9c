package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/interview-copilot/internal/config"
	"alfredoptarigan/interview-copilot/internal/handlers"
	"alfredoptarigan/interview-copilot/internal/repositories"
	"alfredoptarigan/interview-copilot/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	interviewRepo := repositories.NewInterviewRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	responseRepo := repositories.NewResponseRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractorService := services.NewTextExtractorService()
	heuristicAnalyzer := services.NewHeuristicAnalyzer()
	jobPostingService := services.NewJobPostingService()
	transcriptionService := services.NewTranscriptionService()

	credStore := config.NewCredentialStore(cfg.AI)
	aiService := services.NewAIService(credStore, cfg.AI.RequestTimeout)
	log.Printf("✅ AI service initialized (provider: %s, configured: %t)\n",
		cfg.AI.Provider, credStore.Get().Configured())

	// Question bank is optional, only wired when a Qdrant URL is set
	var questionBank services.QuestionBankService
	if cfg.Qdrant.URL != "" {
		questionBank, err = services.NewQuestionBankService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			aiService,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize question bank: %v", err)
		}
		if err := questionBank.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize question bank collection: %v", err)
		}
		log.Println("✅ Question bank initialized successfully")
	} else {
		log.Println("ℹ️ Question bank disabled (QDRANT_URL not set)")
	}

	interviewService := services.NewInterviewService(interviewRepo, questionRepo)
	documentService := services.NewDocumentService(
		interviewRepo,
		docRepo,
		storageService,
		extractorService,
		jobPostingService,
		questionBank,
		aiService,
	)
	analysisService := services.NewAnalysisService(
		interviewRepo,
		docRepo,
		questionRepo,
		responseRepo,
		aiService,
		heuristicAnalyzer,
		questionBank,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	interviewHandler := handlers.NewInterviewHandler(interviewService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	sessionHandler := handlers.NewSessionHandler(analysisService, transcriptionService)
	settingsHandler := handlers.NewSettingsHandler(credStore)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Interview Copilot API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 2,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Interview lifecycle
	api.Post("/interviews", interviewHandler.HandleCreate)
	api.Get("/interviews", interviewHandler.HandleList)
	api.Get("/interviews/:id", interviewHandler.HandleGet)
	api.Delete("/interviews/:id", interviewHandler.HandleDelete)
	api.Post("/interviews/:id/start", interviewHandler.HandleStart)
	api.Get("/interviews/:id/questions", interviewHandler.HandleListQuestions)
	api.Post("/interviews/:id/questions/:questionId/ask", interviewHandler.HandleAskQuestion)
	api.Get("/common-questions", interviewHandler.HandleCommonQuestions)

	// Documents
	api.Post("/interviews/:id/documents", documentHandler.HandleUpload)
	api.Post("/interviews/:id/documents-base64", documentHandler.HandleUploadBase64)
	api.Get("/interviews/:id/documents", documentHandler.HandleList)
	api.Post("/interviews/:id/job-url", documentHandler.HandleAddJobURL)
	api.Post("/interviews/:id/job-url-enhanced", documentHandler.HandleAddJobURLEnhanced)

	// Live session
	api.Post("/interviews/:id/analyze", sessionHandler.HandleAnalyze)
	api.Post("/interviews/:id/analyze-live", sessionHandler.HandleAnalyzeLive)
	api.Post("/interviews/:id/responses", sessionHandler.HandleSaveResponse)
	api.Post("/interviews/:id/detect-question", sessionHandler.HandleDetectQuestion)
	api.Post("/interviews/:id/transcribe", sessionHandler.HandleTranscribe)
	api.Post("/interviews/:id/complete", sessionHandler.HandleComplete)

	// Settings
	api.Post("/settings/api-keys", settingsHandler.HandleSaveAPIKeys)
	api.Get("/settings/api-keys", settingsHandler.HandleGetAPIKeys)
	api.Post("/settings/test-ai", settingsHandler.HandleTestConnection)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Interview Copilot API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/interviews",
				"GET /api/v1/interviews/:id",
				"POST /api/v1/interviews/:id/documents",
				"POST /api/v1/interviews/:id/analyze",
				"POST /api/v1/interviews/:id/responses",
				"POST /api/v1/interviews/:id/complete",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
