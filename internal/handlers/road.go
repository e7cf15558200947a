package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
	"github.com/YCN-AFS/LandmarkNavigator/internal/services"
)

// RoadHandler serves the road endpoints.
type RoadHandler struct {
	service *services.RoadService
}

// NewRoadHandler returns a handler backed by service.
func NewRoadHandler(service *services.RoadService) *RoadHandler {
	return &RoadHandler{service: service}
}

// RoadListResponse is the envelope for road list responses.
type RoadListResponse struct {
	Items []models.Road `json:"items"`
	Total int           `json:"total"`
}

// ListByArea godoc
// @Summary List roads in an area
// @Description Returns the roads of a named area. Matching ignores case; colloquial names resolve through the alias table.
// @Tags roads
// @Produce json
// @Param area query string true "Area name"
// @Success 200 {object} RoadListResponse
// @Success 304 "Not Modified"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /roads [get]
func (h *RoadHandler) ListByArea(c *fiber.Ctx) error {
	area := strings.TrimSpace(c.Query("area"))
	if area == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid area",
			Details: "query parameter \"area\" must not be empty",
		})
	}

	items, err := h.service.ByArea(c.UserContext(), area)
	if err != nil {
		return err
	}

	return respondWithETag(c, RoadListResponse{Items: items, Total: len(items)})
}

// GetByID godoc
// @Summary Get a road
// @Description Returns a single stored road by its id.
// @Tags roads
// @Produce json
// @Param id path int true "Road id"
// @Success 200 {object} models.Road
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /roads/{id} [get]
func (h *RoadHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid road id"})
	}

	road, ok := h.service.ByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "road not found"})
	}

	return c.JSON(road)
}

// SetupRoadRoutes registers the road endpoints on router.
func SetupRoadRoutes(router fiber.Router, service *services.RoadService) {
	h := NewRoadHandler(service)
	router.Get("/roads", h.ListByArea)
	router.Get("/roads/:id", h.GetByID)
}
