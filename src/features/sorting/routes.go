package sorting

import "github.com/gofiber/fiber/v2"

// RegisterRoutes registers the sorting session routes.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	session := app.Group("/session")
	session.Get("/", handler.GetSession)
	session.Post("/next", handler.Next)
	session.Post("/categorize/:key", handler.Categorize)
	session.Post("/undo", handler.Undo)
	session.Post("/pause", handler.TogglePause)
	session.Post("/replay", handler.Replay)

	app.Get("/journal", handler.GetJournal)
}
