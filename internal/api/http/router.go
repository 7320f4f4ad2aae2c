package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/support-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/support-kit/helpdesk-service/internal/auth"
	"github.com/support-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Roles          *handlers.RolesHandler
	Tickets        *handlers.TicketsHandler
	Categories     *handlers.CategoriesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Register and login are public; every
// other route resolves the principal first, and the admin-only routes add a
// role check on top.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	users := api.Group("/users")
	users.Get("/email/:email", auth.RequireRoles(), cfg.Users.GetByEmail)
	users.Get("/", auth.RequireRoles(domain.RoleAdmin), cfg.Users.List)
	users.Get("/:id", auth.RequireRoles(domain.RoleAdmin), cfg.Users.GetByID)
	users.Patch("/:id", auth.RequireRoles(domain.RoleAdmin), cfg.Users.Update)
	users.Delete("/:id", auth.RequireRoles(domain.RoleAdmin), cfg.Users.Delete)

	roles := api.Group("/roles")
	roles.Post("/", auth.RequireRoles(domain.RoleAdmin), cfg.Roles.Create)
	roles.Get("/", auth.RequireRoles(), cfg.Roles.List)
	roles.Get("/:id", auth.RequireRoles(), cfg.Roles.GetByID)

	tickets := api.Group("/tickets", auth.RequireRoles())
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.GetByID)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	categories := api.Group("/categories", auth.RequireRoles())
	categories.Post("/", cfg.Categories.Create)
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.GetByID)
	categories.Patch("/:id", cfg.Categories.Update)
	categories.Delete("/:id", cfg.Categories.Delete)
}
