package server

import (
	"log"

	"edubook-be/internal/bootstrap"
	"edubook-be/internal/config"
	"edubook-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.App.MaxUploadBytes,
	})

	// Middleware
	app.Use(cors.New(corsConfig(cfg.App.CorsAllowedOrigins)))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

// corsConfig builds the cors middleware settings. Credentials cannot be
// combined with a wildcard origin (fiber refuses the pair), so they are
// only allowed when concrete origins are configured.
func corsConfig(allowedOrigins string) cors.Config {
	return cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: allowedOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.SessionController.RegisterRoutes(api)
	c.DocumentController.RegisterRoutes(api)
	c.ContentController.RegisterRoutes(api)
	c.EventController.RegisterRoutes(api)

	c.StreamHandler.RegisterRoutes(api)
}
