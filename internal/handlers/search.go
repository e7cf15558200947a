package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
	"github.com/YCN-AFS/LandmarkNavigator/internal/services"
)

// SearchHandler serves the free-text search endpoint.
type SearchHandler struct {
	service *services.SearchService
}

// NewSearchHandler returns a handler backed by service.
func NewSearchHandler(service *services.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// SearchListResponse is the envelope for search responses.
type SearchListResponse struct {
	Items []models.SearchResult `json:"items"`
	Total int                   `json:"total"`
}

// Search godoc
// @Summary Search pages by text
// @Description Runs a free-text search against the configured wiki and returns matching pages.
// @Tags search
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} SearchListResponse
// @Success 304 "Not Modified"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid query",
			Details: "query parameter \"q\" must not be empty",
		})
	}

	items, err := h.service.Query(c.UserContext(), q)
	if err != nil {
		return err
	}

	return respondWithETag(c, SearchListResponse{Items: items, Total: len(items)})
}

// SetupSearchRoutes registers the search endpoint on router.
func SetupSearchRoutes(router fiber.Router, service *services.SearchService) {
	h := NewSearchHandler(service)
	router.Get("/search", h.Search)
}
