package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/esim-activation-service/internal/api/http/handlers"
	"github.com/spec-kit/esim-activation-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Activations    *handlers.ActivationsHandler
	ShortLinks     *handlers.ShortLinksHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	// Public surface: projected single-record read and short links.
	api.Get("/activation/:id", cfg.Activations.GetPublic)
	api.Post("/shortlink", cfg.ShortLinks.Create)
	api.Get("/shortlink/:id", cfg.ShortLinks.Resolve)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	authGroup.Get("/verify", cfg.AuthMiddleware.Require, cfg.Auth.Verify)
	authGroup.Post("/change-password", cfg.AuthMiddleware.Require, cfg.Auth.ChangePassword)

	admin := api.Group("/admin")
	// Create tolerates anonymous callers; the service gates what they may set.
	admin.Post("/activations", cfg.AuthMiddleware.Optional, cfg.Activations.Create)
	admin.Get("/activations", cfg.AuthMiddleware.Require, cfg.Activations.List)
	admin.Put("/activations/:id", cfg.AuthMiddleware.Require, cfg.Activations.Update)
	admin.Delete("/activations/:id", cfg.AuthMiddleware.Require, cfg.Activations.Delete)
}
