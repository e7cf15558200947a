package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/YCN-AFS/LandmarkNavigator/internal/logger"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler renders uncaught errors. Fiber errors keep their
// status code; anything else is logged and answered with an opaque
// 500 so internal detail never reaches clients.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(ErrorResponse{Error: e.Message})
	}

	logger.GetLogger("handlers").Errorw("unhandled request error",
		"path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "service failure"})
}
