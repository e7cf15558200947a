package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/YCN-AFS/LandmarkNavigator/internal/cache"
	"github.com/YCN-AFS/LandmarkNavigator/internal/config"
	"github.com/YCN-AFS/LandmarkNavigator/internal/logger"
)

// AdminHandler serves the internal cache management endpoints. All of
// them require the X-API-Key header; with no key configured the
// endpoints reject every call.
type AdminHandler struct {
	cfg   *config.Config
	cache *cache.Cache
}

// NewAdminHandler returns a handler for the internal endpoints.
func NewAdminHandler(cfg *config.Config, ca *cache.Cache) *AdminHandler {
	return &AdminHandler{cfg: cfg, cache: ca}
}

type invalidateRequest struct {
	Key string `json:"key"`
}

// InvalidateCache godoc
// @Summary Invalidate cache entries
// @Description Removes the entry for the given key, or every entry when no key is given.
// @Tags internal
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Internal API key"
// @Param request body invalidateRequest false "Cache key to drop"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /internal/cache/invalidate [post]
func (h *AdminHandler) InvalidateCache(c *fiber.Ctx) error {
	apiKey := c.Get("X-API-Key")
	if apiKey == "" || apiKey != h.cfg.InternalAPIKey {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or missing API key",
		})
	}

	var req invalidateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	log := logger.GetLogger("admin")
	if req.Key == "" {
		removed := h.cache.Purge()
		log.Infow("cache purged", "removed", removed)
		return c.JSON(fiber.Map{"removed": removed})
	}

	removed := h.cache.Invalidate(req.Key)
	log.Infow("cache key invalidated", "key", req.Key, "removed", removed)
	return c.JSON(fiber.Map{"key": req.Key, "removed": removed})
}

// SweepCache godoc
// @Summary Sweep expired cache entries
// @Description Removes every expired entry and reports how many were removed.
// @Tags internal
// @Produce json
// @Param X-API-Key header string true "Internal API key"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /internal/cache/sweep [post]
func (h *AdminHandler) SweepCache(c *fiber.Ctx) error {
	apiKey := c.Get("X-API-Key")
	if apiKey == "" || apiKey != h.cfg.InternalAPIKey {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or missing API key",
		})
	}

	removed := h.cache.SweepExpired()
	logger.GetLogger("admin").Infow("cache swept", "removed", removed)
	return c.JSON(fiber.Map{"removed": removed})
}

// SetupAdminRoutes registers the internal endpoints on router.
func SetupAdminRoutes(router fiber.Router, cfg *config.Config, ca *cache.Cache) {
	h := NewAdminHandler(cfg, ca)
	internal := router.Group("/internal")
	internal.Post("/cache/invalidate", h.InvalidateCache)
	internal.Post("/cache/sweep", h.SweepCache)
}
