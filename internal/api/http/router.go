package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tasnees/IBM-hackathon/internal/api/http/handlers"
	"github.com/tasnees/IBM-hackathon/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Support    *handlers.SupportHandler
	Catalog    *handlers.CatalogHandler
	APIKeyGate *auth.APIKeyMiddleware
}

// RegisterRoutes wires HTTP routes. Everything except /health sits behind
// the shared-secret gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Check)

	protected := app.Group("", cfg.APIKeyGate.Handle)
	protected.Post("/get_support", cfg.Support.GetSupport)
	protected.Get("/assignment_groups", cfg.Catalog.AssignmentGroups)
	protected.Get("/categories", cfg.Catalog.Categories)
	protected.Get("/impacts", cfg.Catalog.Impacts)
	protected.Get("/urgencies", cfg.Catalog.Urgencies)
}
