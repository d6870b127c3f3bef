package hosting

import (
	"fmt"
	"log/slog"

	"github.com/contre95/soundsort/src/features/config"
	"github.com/contre95/soundsort/src/features/downloading"
	"github.com/contre95/soundsort/src/features/metrics"
	"github.com/contre95/soundsort/src/features/playback"
	"github.com/contre95/soundsort/src/features/sorting"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services are the features exposed over HTTP. Nil ones are not routed.
type Services struct {
	Sorting     *sorting.Service
	Playback    *playback.Service
	Downloading *downloading.Service
	Metrics     *metrics.Service
}

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, services Services) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				slog.Error("Internal Server Error", "error", err)
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
		AppName:               "Soundsort",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(recover.New())
	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	config.RegisterRoutes(app, cfg)
	if services.Sorting != nil {
		sorting.RegisterRoutes(app, services.Sorting)
	}
	if services.Playback != nil {
		playback.RegisterRoutes(app, services.Playback)
	}
	if services.Downloading != nil {
		downloading.RegisterRoutes(app, services.Downloading)
	}
	if services.Metrics != nil {
		metrics.RegisterRoutes(app, services.Metrics)
	}

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	slog.Info("Starting HTTP server", "port", s.port)
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
