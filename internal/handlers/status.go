package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/YCN-AFS/LandmarkNavigator/internal/cache"
	"github.com/YCN-AFS/LandmarkNavigator/internal/store"
)

// StatusHandler reports instance diagnostics.
type StatusHandler struct {
	instanceID  string
	environment string
	startedAt   time.Time
	store       *store.Store
	cache       *cache.Cache
	roadSources []string
}

// NewStatusHandler captures the boot identity and the backing stores.
// roadSources lists the road chain's sources in try order.
func NewStatusHandler(instanceID, environment string, st *store.Store, ca *cache.Cache, roadSources []string) *StatusHandler {
	return &StatusHandler{
		instanceID:  instanceID,
		environment: environment,
		startedAt:   time.Now(),
		store:       st,
		cache:       ca,
		roadSources: roadSources,
	}
}

// Status godoc
// @Summary Instance status
// @Description Returns the instance id, uptime, stored entity counts, cache occupancy and the configured road source order.
// @Tags status
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /status [get]
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	landmarks, roads := h.store.Counts()
	return c.JSON(fiber.Map{
		"instance_id":   h.instanceID,
		"environment":   h.environment,
		"uptime":        time.Since(h.startedAt).Round(time.Second).String(),
		"landmarks":     landmarks,
		"roads":         roads,
		"cache_entries": h.cache.Len(),
		"road_sources":  h.roadSources,
	})
}

// SetupStatusRoutes registers the status endpoint on router.
func SetupStatusRoutes(router fiber.Router, h *StatusHandler) {
	router.Get("/status", h.Status)
}
