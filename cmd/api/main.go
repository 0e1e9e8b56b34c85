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

	"annotet/contract-analyzer/internal/config"
	"annotet/contract-analyzer/internal/handlers"
	"annotet/contract-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	qaParser := services.NewQAParserService()
	keywordScorer := services.NewKeywordScorer(services.KeywordConfig{
		MinTokenLength: cfg.Evaluation.MinKeywordLength,
		Stopwords:      services.DefaultKeywordConfig().Stopwords,
	})

	matcher, err := services.NewPairMatcher(keywordScorer, cfg.Evaluation.MatchThreshold)
	if err != nil {
		log.Fatalf("❌ Invalid matcher configuration: %v", err)
	}
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	judge := services.NewGeminiJudge(geminiService, cfg.Evaluation.RetryMaxAttempts)

	// Initialize evaluator
	evaluatorService := services.NewEvaluatorService(
		qaParser,
		keywordScorer,
		matcher,
		judge,
		cfg.Evaluation.JudgeConcurrency,
		cfg.Evaluation.JudgeTimeout,
	)
	log.Println("✅ Evaluator service initialized")

	// Initialize Q&A generator
	qaGenerator := services.NewQAGeneratorService(
		geminiService,
		services.NewTextChunker(),
		cfg.Evaluation.MaxChunkSize,
		cfg.Evaluation.RetryMaxAttempts,
	)

	// Initialize rubric evaluator
	rubricEvaluator := services.NewRubricEvaluatorService(
		geminiService,
		cfg.Evaluation.JudgeConcurrency,
		cfg.Evaluation.RetryMaxAttempts,
	)

	rubricContent := ""
	if data, err := os.ReadFile(cfg.Rubric.Path); err == nil {
		rubricContent = string(data)
		log.Println("✅ Evaluation rubric loaded")
	} else {
		log.Printf("⚠️  Rubric file not found at %s. Rubric evaluation will be disabled.\n", cfg.Rubric.Path)
	}

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		storageService,
		pdfParser,
		cfg.Storage.MaxFileSize,
	)
	generateHandler := handlers.NewGenerateHandler(
		storageService,
		pdfParser,
		qaGenerator,
		cfg.Storage.MaxFileSize,
	)
	evaluateHandler := handlers.NewEvaluationHandler(
		evaluatorService,
		cfg.Evaluation.LLMWeight,
		cfg.Evaluation.KeywordWeight,
	)
	rubricHandler := handlers.NewRubricHandler(
		storageService,
		pdfParser,
		rubricEvaluator,
		rubricContent,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Contract Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/generate-qa", generateHandler.HandleGenerateQA)
	api.Post("/evaluate", evaluateHandler.HandleEvaluate)
	api.Post("/evaluate-file", evaluateHandler.HandleEvaluateFile)
	api.Post("/evaluate-pair", evaluateHandler.HandleEvaluatePair)
	api.Post("/evaluate-rubric", rubricHandler.HandleEvaluateRubric)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Contract Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/generate-qa",
				"POST /api/v1/evaluate",
				"POST /api/v1/evaluate-file",
				"POST /api/v1/evaluate-pair",
				"POST /api/v1/evaluate-rubric",
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
