package main

import (
	"os"

	"github.com/joho/godotenv"

	"mangwale-cart/app"
	"mangwale-cart/config"
	"mangwale-cart/logger"
)

func main() {
	log := logger.Get()

	// Load .env in development; in production variables are set directly.
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Infof("No .env file found, using system environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	log.Infof("🚀 Server starting on %s", cfg.Address)
	if err := application.Fiber.Listen(cfg.Address); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
