package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/YCN-AFS/LandmarkNavigator/internal/cache"
	"github.com/YCN-AFS/LandmarkNavigator/internal/store"
)

// HealthCheck godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

// LivenessCheck reports that the process is running.
func LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessCheck godoc
// @Summary Readiness probe
// @Description Reports whether the instance can serve traffic, with current store and cache occupancy.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /readiness [get]
func ReadinessCheck(st *store.Store, ca *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		landmarks, roads := st.Counts()
		return c.JSON(fiber.Map{
			"status": "ready",
			"store": fiber.Map{
				"landmarks": landmarks,
				"roads":     roads,
			},
			"cache": fiber.Map{
				"entries": ca.Len(),
			},
		})
	}
}

// SetupHealthRoutes registers the probe endpoints.
func SetupHealthRoutes(app *fiber.App, st *store.Store, ca *cache.Cache) {
	app.Get("/healthz", HealthCheck)
	app.Get("/v1/healthz", HealthCheck)
	app.Get("/v1/health", HealthCheck)
	app.Get("/v1/liveness", LivenessCheck)
	app.Get("/v1/readiness", ReadinessCheck(st, ca))
}
