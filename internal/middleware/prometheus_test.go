package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp() *fiber.App {
	app := fiber.New()
	app.Use(PrometheusMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"pong": true})
	})
	app.Get("/metrics", PrometheusHandler())
	return app
}

func TestPrometheusMiddlewareExposesCounters(t *testing.T) {
	app := newMetricsApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "landmarknav_http_requests_total")
}

func TestInternalOnly(t *testing.T) {
	app := fiber.New()
	app.Use(InternalOnly())
	app.Get("/guarded", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name   string
		realIP string
		want   int
	}{
		{"loopback", "127.0.0.1", http.StatusOK},
		{"private ten net", "10.1.2.3", http.StatusOK},
		{"private class c", "192.168.0.10", http.StatusOK},
		{"ipv6 loopback", "::1", http.StatusOK},
		{"public address", "8.8.8.8", http.StatusForbidden},
		{"garbage header", "not-an-ip", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			req.Header.Set("X-Real-IP", tt.realIP)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
