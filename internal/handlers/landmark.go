package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
	"github.com/YCN-AFS/LandmarkNavigator/internal/services"
)

// LandmarkHandler serves the landmark endpoints.
type LandmarkHandler struct {
	service *services.LandmarkService
}

// NewLandmarkHandler returns a handler backed by service.
func NewLandmarkHandler(service *services.LandmarkService) *LandmarkHandler {
	return &LandmarkHandler{service: service}
}

// LandmarkListResponse is the envelope for landmark list responses.
type LandmarkListResponse struct {
	Items []models.Landmark `json:"items"`
	Total int               `json:"total"`
}

// ListByBounds godoc
// @Summary List landmarks in a viewport
// @Description Returns the landmarks inside the rectangle spanned by the south-west and north-east corners. Points on the edges count as inside.
// @Tags landmarks
// @Produce json
// @Param south query number true "South edge latitude"
// @Param west query number true "West edge longitude"
// @Param north query number true "North edge latitude"
// @Param east query number true "East edge longitude"
// @Success 200 {object} LandmarkListResponse
// @Success 304 "Not Modified"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /landmarks [get]
func (h *LandmarkHandler) ListByBounds(c *fiber.Ctx) error {
	bounds, err := parseBounds(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid viewport",
			Details: err.Error(),
		})
	}

	items, err := h.service.ByBounds(c.UserContext(), bounds)
	if err != nil {
		return err
	}

	return respondWithETag(c, LandmarkListResponse{Items: items, Total: len(items)})
}

// GetByID godoc
// @Summary Get a landmark
// @Description Returns a single stored landmark by its id.
// @Tags landmarks
// @Produce json
// @Param id path int true "Landmark id"
// @Success 200 {object} models.Landmark
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /landmarks/{id} [get]
func (h *LandmarkHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid landmark id"})
	}

	landmark, ok := h.service.ByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "landmark not found"})
	}

	return c.JSON(landmark)
}

// SetupLandmarkRoutes registers the landmark endpoints on router.
func SetupLandmarkRoutes(router fiber.Router, service *services.LandmarkService) {
	h := NewLandmarkHandler(service)
	router.Get("/landmarks", h.ListByBounds)
	router.Get("/landmarks/:id", h.GetByID)
}

// parseBounds validates the viewport query: all four edges present
// and numeric, latitudes in [-90,90], longitudes in [-180,180],
// south not above north and west not beyond east.
func parseBounds(c *fiber.Ctx) (models.Bounds, error) {
	south, err := parseCoord(c, "south", 90)
	if err != nil {
		return models.Bounds{}, err
	}
	west, err := parseCoord(c, "west", 180)
	if err != nil {
		return models.Bounds{}, err
	}
	north, err := parseCoord(c, "north", 90)
	if err != nil {
		return models.Bounds{}, err
	}
	east, err := parseCoord(c, "east", 180)
	if err != nil {
		return models.Bounds{}, err
	}

	if south > north {
		return models.Bounds{}, fmt.Errorf("south must not exceed north")
	}
	if west > east {
		return models.Bounds{}, fmt.Errorf("west must not exceed east")
	}

	return models.Bounds{
		SW: models.LatLng{Lat: south, Lng: west},
		NE: models.LatLng{Lat: north, Lng: east},
	}, nil
}

func parseCoord(c *fiber.Ctx, name string, limit float64) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parameter %q is not a valid coordinate", name)
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("parameter %q out of range [%v, %v]", name, -limit, limit)
	}
	return v, nil
}
