package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/database"
	"github.com/docuchat/docuchat/internal/handlers"
	"github.com/docuchat/docuchat/internal/middleware"
	"github.com/docuchat/docuchat/internal/rag"
	"github.com/docuchat/docuchat/internal/services"
	"github.com/docuchat/docuchat/internal/storage"
	"github.com/docuchat/docuchat/internal/utils"

	_ "github.com/docuchat/docuchat/docs/api" // Swagger docs
)

const appVersion = "1.0.0"

// @title DocuChat API
// @version 1.0.0
// @description Web RAG backend for managing document collections and chatting with them through a local model runtime

// @contact.name API Support
// @contact.url https://github.com/docuchat/docuchat

// @license.name MIT

// @host localhost:8000
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the metadata store
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create the storage roots up front so a misconfigured path fails fast
	if err := os.MkdirAll(cfg.UploadPath, 0o755); err != nil {
		log.Fatalf("Failed to create upload path: %v", err)
	}
	if err := os.MkdirAll(cfg.IndexStoragePath, 0o755); err != nil {
		log.Fatalf("Failed to create index storage path: %v", err)
	}

	// Wire the service object once; handlers receive it by reference
	ollama := rag.NewOllamaClient(cfg.OllamaBaseURL, cfg.DefaultEmbedModel, cfg.DefaultLLMModel, cfg.LLMRequestTimeout)
	chunker := rag.NewSentenceChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	cache := rag.NewCache(cfg.IndexStoragePath, chunker, ollama)
	content := storage.NewContentStore(cfg.UploadPath)
	service := services.NewRAGService(db, cfg, content, cache, ollama, ollama)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    cfg.MaxUploadSize,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("docuchat")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Root and health endpoints
	healthHandler := &handlers.HealthHandler{Config: cfg, DB: db}
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "DocuChat API",
			"version": appVersion,
			"docs":    "/swagger/index.html",
		})
	})
	app.Get("/health", healthHandler.Health)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	collectionsHandler := &handlers.CollectionsHandler{Service: service}
	chatHandler := &handlers.ChatHandler{Service: service}

	collections := api.Group("/collections")
	collections.Get("/", collectionsHandler.ListCollections)
	collections.Post("/", collectionsHandler.CreateCollection)
	collections.Delete("/:id", collectionsHandler.DeleteCollection)
	collections.Post("/:id/documents", collectionsHandler.UploadDocuments)
	collections.Post("/:id/index", collectionsHandler.BuildIndex)
	collections.Post("/:id/query", collectionsHandler.QueryCollection)

	chat := api.Group("/chat")
	chat.Post("/", chatHandler.Chat)
	chat.Get("/health", chatHandler.ChatHealth)
	chat.Get("/collections/:id/status", chatHandler.CollectionStatus)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
