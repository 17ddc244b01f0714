package main

import (
	"context"
	"log"
	"time"

	"github.com/Soumya-Xd/CreativeShowcase/internal/router"
	"github.com/Soumya-Xd/CreativeShowcase/pkg/config"
	"github.com/Soumya-Xd/CreativeShowcase/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure the connection is closed when main exits

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Database, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
