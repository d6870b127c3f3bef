package sorting

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the sorting session over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new sorting handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// statusResponse is a Status plus the rendered progress line
type statusResponse struct {
	Status
	Progress string `json:"progress"`
}

func (h *Handler) respondStatus(c *fiber.Ctx) error {
	st := h.service.Status()
	return c.JSON(statusResponse{Status: st, Progress: st.Progress()})
}

// GetSession returns the current session status.
func (h *Handler) GetSession(c *fiber.Ctx) error {
	return h.respondStatus(c)
}

// Next skips the current sound.
func (h *Handler) Next(c *fiber.Ctx) error {
	h.service.Next(c.UserContext())
	return h.respondStatus(c)
}

// Categorize moves the current sound into the category bound to :key.
func (h *Handler) Categorize(c *fiber.Ctx) error {
	key := c.Params("key")
	rec, err := h.service.Categorize(c.UserContext(), key)
	if err != nil {
		slog.Error("Categorize request failed", "key", key, "error", err)
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	st := h.service.Status()
	return c.JSON(fiber.Map{"record": rec, "session": statusResponse{Status: st, Progress: st.Progress()}})
}

// Undo reverses the last categorization.
func (h *Handler) Undo(c *fiber.Ctx) error {
	result, err := h.service.Undo(c.UserContext())
	if err != nil {
		slog.Error("Undo request failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if result == nil {
		return c.Status(fiber.StatusNoContent).Send(nil)
	}
	return c.JSON(result)
}

// TogglePause pauses or resumes playback.
func (h *Handler) TogglePause(c *fiber.Ctx) error {
	paused, err := h.service.TogglePause(c.UserContext())
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"paused": paused})
}

// Replay restarts the current sound.
func (h *Handler) Replay(c *fiber.Ctx) error {
	if err := h.service.Replay(c.UserContext()); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return h.respondStatus(c)
}

// GetJournal returns the latest journal entries.
func (h *Handler) GetJournal(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	entries, err := h.service.Journal(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if entries == nil {
		entries = []JournalEntry{}
	}
	return c.JSON(entries)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNoCurrentSound):
		return fiber.StatusConflict
	case errors.Is(err, ErrUnknownCategory):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
