package handlers

import "github.com/gofiber/fiber/v2"

// HandleHealth reports service liveness. GET /healthz
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
