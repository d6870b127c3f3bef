package downloading

import "github.com/gofiber/fiber/v2"

// RegisterRoutes registers the download routes
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	download := app.Group("/download")
	download.Get("/providers", handler.GetProviders)
	download.Post("/", handler.Fetch)
}
