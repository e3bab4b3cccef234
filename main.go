package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"vitrina-tech/app"
	"vitrina-tech/config"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		} else {
			log.Printf("Successfully loaded environment variables from .env (overriding system variables)")
		}
	}

	cfg := config.Load()

	// Initialize application
	if err := app.Initialize(cfg); err != nil {
		log.Fatal(err)
	}

	// Start server
	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := "0.0.0.0:" + cfg.Port
	log.Printf("Server starting on %s", addr)
	log.Printf("Template picklist endpoint: GET http://localhost:%s/admin/templates", cfg.Port)

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
