package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"analyzer/config"
)

func guardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/guarded", RequestLogger, APIKeyRequired, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAPIKeyPassThroughWhenUnset(t *testing.T) {
	config.AppConfig.APIKey = ""
	app := guardedApp()

	resp, _ := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAPIKeyRejected(t *testing.T) {
	config.AppConfig.APIKey = "secret"
	defer func() { config.AppConfig.APIKey = "" }()
	app := guardedApp()

	resp, _ := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	assert.Equal(t, 401, resp.StatusCode)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("X-API-Key", "wrong")
	resp, _ = app.Test(req)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAPIKeyAccepted(t *testing.T) {
	config.AppConfig.APIKey = "secret"
	defer func() { config.AppConfig.APIKey = "" }()
	app := guardedApp()

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, _ := app.Test(req)
	assert.Equal(t, 200, resp.StatusCode)
}
