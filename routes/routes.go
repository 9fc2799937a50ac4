package routes

import (
	"analyzer/handlers"
	"analyzer/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Get("/healthz", handlers.HandleHealth)

	api := app.Group("/api/v1", middleware.RequestLogger, middleware.APIKeyRequired)

	analysis := api.Group("/analysis")
	analysis.Post("/", handlers.HandleAnalyze)
	analysis.Post("/insights", handlers.HandleGenerateInsights)
	analysis.Post("/export", handlers.HandleExportText)
}
