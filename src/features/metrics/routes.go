package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers the metrics routes with the Fiber app.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(service.Recorder().Registry(), promhttp.HandlerOpts{})))

	api := app.Group("/api/metrics")
	api.Get("/", handler.GetSummary)
}
