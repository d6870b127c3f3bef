package metrics

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the metrics feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new metrics handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetSummary returns the soundsort counters as JSON.
func (h *Handler) GetSummary(c *fiber.Ctx) error {
	metrics, err := h.service.GetAllMetrics()
	if err != nil {
		slog.Error("Error loading metrics", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error loading metrics"})
	}
	if metrics == nil {
		metrics = []Metric{}
	}
	return c.JSON(metrics)
}
