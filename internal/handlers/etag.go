package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/gofiber/fiber/v2"
)

// respondWithETag writes payload as JSON with a strong ETag derived
// from the serialized body, answering a matching If-None-Match with
// 304 Not Modified.
func respondWithETag(c *fiber.Ctx, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize response: %w", err)
	}

	etag := fmt.Sprintf("\"%016x\"", xxhash.Sum64(body))
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}

	c.Set(fiber.HeaderETag, etag)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
