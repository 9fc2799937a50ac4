package middleware

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"analyzer/config"
	"analyzer/logger"
)

// RequestLogger logs one structured line per request.
func RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	logger.L.Info("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)
	return err
}

// APIKeyRequired guards the API with the configured static key, supplied
// by clients in the X-API-Key header. When no key is configured the
// middleware is a pass-through (single-user deployments).
func APIKeyRequired(c *fiber.Ctx) error {
	expected := config.AppConfig.APIKey
	if expected == "" {
		return c.Next()
	}

	provided := c.Get("X-API-Key")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Missing or invalid API key",
		})
	}
	return c.Next()
}
