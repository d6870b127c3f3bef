package playback

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles playback requests
type Handler struct {
	service *Service
}

// NewHandler creates a new playback handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetCurrent streams the sound the session has loaded.
func (h *Handler) GetCurrent(c *fiber.Ctx) error {
	stream, err := h.service.GetCurrent(c.UserContext())
	if err != nil {
		if errors.Is(err, ErrNothingLoaded) {
			return c.Status(fiber.StatusNotFound).SendString("No sound loaded")
		}
		slog.Error("Failed to get current sound", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to get current sound")
	}

	c.Set("Content-Type", stream.ContentType)
	c.Set("Content-Disposition", `inline; filename="`+stream.Name+`"`)
	c.Set("Cache-Control", "no-cache")
	return c.SendStream(stream.Reader, int(stream.Size))
}
