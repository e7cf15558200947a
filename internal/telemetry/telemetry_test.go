package telemetry

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracerWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "landmarknavigator-test", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitMeterWithoutEndpoint(t *testing.T) {
	shutdown, err := InitMeter(context.Background(), "landmarknavigator-test", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestMiddlewarePassesRequestsThrough(t *testing.T) {
	app := fiber.New()
	app.Use(New(Config{ServiceName: "landmarknavigator-test"}))

	var sawContext bool
	app.Get("/ping", func(c *fiber.Ctx) error {
		sawContext = c.UserContext() != nil
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, sawContext)
}

func TestMiddlewareKeepsHandlerErrors(t *testing.T) {
	app := fiber.New()
	app.Use(New(Config{ServiceName: "landmarknavigator-test"}))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "nothing here")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMiddlewareSkip(t *testing.T) {
	app := fiber.New()
	app.Use(New(Config{
		ServiceName: "landmarknavigator-test",
		Skip: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}))
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
