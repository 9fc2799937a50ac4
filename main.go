package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"analyzer/config"
	"analyzer/logger"
	"analyzer/routes"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration; invalid analysis thresholds abort startup.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // uploaded CSVs
	})

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	logger.L.Info("serving", zap.String("addr", cfg.Addr))
	log.Fatal(app.Listen(cfg.Addr))
}
