// Package web provides the HTTP API for trigger management.
package web

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/marden/flint/pkg/persistence"
	"github.com/marden/flint/pkg/registry"
	"github.com/marden/flint/pkg/trigger"
)

type API struct {
	handlers *APIHandlers
}

func NewAPI(manager *trigger.Manager, reg *registry.Registry, store persistence.Persistence) *API {
	return &API{
		handlers: NewAPIHandlers(manager, reg, store),
	}
}

func (a *API) App() *fiber.App {
	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("flint API")
	})

	t := app.Group("/triggers")
	t.Get("/", a.handlers.GetTriggers)
	t.Post("/", a.handlers.CreateTrigger)
	t.Get("/:id", a.handlers.GetTrigger)
	t.Put("/:id", a.handlers.UpdateTrigger)
	t.Delete("/:id", a.handlers.DeleteTrigger)

	app.Get("/checkers", a.handlers.GetCheckers)
	app.Get("/actions", a.handlers.GetActions)
	app.Get("/health", a.handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	return a.App().Listen(":" + strconv.Itoa(port))
}
