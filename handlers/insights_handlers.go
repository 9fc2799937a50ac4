package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"analyzer/ai"
	"analyzer/config"
	"analyzer/logger"
	"analyzer/models"
	"analyzer/utils"
)

// HandleGenerateInsights turns a previously produced report into an AI
// narrative. POST /api/v1/analysis/insights
// The Gemini key comes from configuration, or per request via the
// X-Gemini-Key header so users can bring their own key.
func HandleGenerateInsights(c *fiber.Ctx) error {
	var req models.InsightsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}

	apiKey := c.Get("X-Gemini-Key")
	if apiKey == "" {
		apiKey = config.AppConfig.GeminiKey
	}
	if apiKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "No Gemini API key configured; set GEMINI_API_KEY or pass X-Gemini-Key",
		})
	}

	modelName := config.AppConfig.GeminiModel
	insights, err := ai.GenerateInsights(c.Context(), apiKey, modelName, &req.Report)
	if err != nil {
		logger.L.Error("insight generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to generate insights",
		})
	}

	return c.JSON(models.InsightsResponse{
		ReportID: req.ReportID,
		Model:    modelName,
		Insights: insights,
	})
}

// HandleExportText renders a report as the plain-text document users
// download. POST /api/v1/analysis/export
func HandleExportText(c *fiber.Ctx) error {
	var req models.InsightsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(utils.RenderReportText(&req.Report, req.Insights))
}
