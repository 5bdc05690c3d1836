// main.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/cseboard/cse-whiteboard/internal/cache"
	"github.com/cseboard/cse-whiteboard/internal/config"
	"github.com/cseboard/cse-whiteboard/internal/database"
	"github.com/cseboard/cse-whiteboard/internal/handlers"
	"github.com/cseboard/cse-whiteboard/internal/middleware"
	"github.com/cseboard/cse-whiteboard/internal/services"
	"github.com/cseboard/cse-whiteboard/internal/summary"
	"github.com/cseboard/cse-whiteboard/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	_ "github.com/cseboard/cse-whiteboard/docs/api" // Swagger docs
)

// @title CSE Whiteboard API
// @version 1.0.0
// @description Customer whiteboard service for customer success engineers: customers, notes, todos, audit trails, and weekly reports

// @contact.name API Support
// @contact.url https://github.com/cseboard/cse-whiteboard

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Listing cache (nil when REDIS_URL is unset)
	listings, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer listings.Close()
	if listings.Enabled() {
		log.Printf("Listing cache enabled (ttl %s)", cfg.CacheTTL)
	} else {
		log.Println("Listing cache disabled")
	}

	// Summary client (nil when SUMMARY_API_URL is unset)
	summarizer := summary.New(cfg.SummaryAPIURL, cfg.SummaryAPIKey, cfg.SummaryModel, cfg.SummaryTimeout)
	var reportSummarizer services.Summarizer
	if summarizer != nil {
		reportSummarizer = summarizer
		log.Printf("Executive summaries enabled (model %s, concurrency %d)", cfg.SummaryModel, cfg.SummaryConcurrency)
	} else {
		log.Println("Executive summaries disabled")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestID} ${status} ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("cse_whiteboard")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	customerHandler := &handlers.CustomerHandler{DB: db, Cache: listings}
	todoHandler := &handlers.TodoHandler{DB: db, Cache: listings}
	reportHandler := &handlers.ReportHandler{DB: db, Summarizer: reportSummarizer, Concurrency: cfg.SummaryConcurrency}
	healthHandler := &handlers.HealthHandler{Config: cfg, DB: db, Cache: listings}

	// Health is unauthenticated for probes
	app.Get("/health", healthHandler.Health)

	// API routes under /api, all session-authenticated
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	api.Use(middleware.AuthUser(cfg))

	api.Get("/whoami", healthHandler.Whoami)

	// Customer routes
	api.Post("/customers", customerHandler.CreateCustomer)
	api.Get("/customers", customerHandler.ListCustomers)
	api.Get("/customers/:id", customerHandler.GetCustomer)
	api.Put("/customers/:id", customerHandler.UpdateCustomer)
	api.Post("/customers/:id/archive", customerHandler.ArchiveCustomer)
	api.Post("/customers/:id/unarchive", customerHandler.UnarchiveCustomer)
	api.Post("/customers/:id/notes", customerHandler.AddNote)
	api.Get("/customers/:id/notes", customerHandler.ListNotes)
	api.Get("/customers/:id/audit", customerHandler.ListCustomerAudit)

	// Note routes
	api.Put("/notes/:id", customerHandler.UpdateNote)

	// Todo routes (audit/recent before :id so "audit" does not parse as an id)
	api.Post("/todos", todoHandler.CreateTodo)
	api.Get("/todos", todoHandler.ListTodos)
	api.Get("/todos/audit/recent", todoHandler.RecentTodoAudit)
	api.Put("/todos/:id", todoHandler.UpdateTodo)
	api.Delete("/todos/:id", todoHandler.DeleteTodo)
	api.Post("/todos/:id/toggle", todoHandler.ToggleTodo)
	api.Get("/todos/:id/audit", todoHandler.ListTodoAudit)

	// Report routes
	api.Post("/reports/weekly", reportHandler.WeeklyReport)
	api.Post("/reports/weekly/text", reportHandler.WeeklyReportText)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var custom *types.CustomError
	if errors.As(err, &custom) {
		code = custom.Code
		message = custom.Message
		errorType = custom.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
