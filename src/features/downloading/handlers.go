package downloading

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for downloading
type Handler struct {
	service *Service
}

// NewHandler creates a new downloading handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Fetch runs a download and answers with its summary once done.
func (h *Handler) Fetch(c *fiber.Ctx) error {
	var req Request
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	summary, err := h.service.Run(c.UserContext(), req, nil)
	if err != nil {
		slog.Error("Download request failed", "query", req.Query, "error", err)
		status := fiber.StatusBadGateway
		switch {
		case errors.Is(err, ErrProviderNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, ErrEmptyQuery):
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

// GetProviders lists the available providers.
func (h *Handler) GetProviders(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"providers": h.service.Providers(), "output_dir": h.service.OutputDir()})
}
