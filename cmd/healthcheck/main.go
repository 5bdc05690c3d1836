// main.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/cseboard/cse-whiteboard/internal/cache"
	"github.com/cseboard/cse-whiteboard/internal/config"
	"github.com/cseboard/cse-whiteboard/internal/database"
	"github.com/cseboard/cse-whiteboard/internal/services"
)

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

	listings, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer listings.Close()

	// Perform health check
	result := services.HealthCheck(context.Background(), cfg, db, listings)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
