package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eftah/restaurant-service/internal/api/http/handlers"
	"github.com/eftah/restaurant-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Upload   *handlers.UploadHandler
	Menu     *handlers.MenuHandler
	Category *handlers.CategoryHandler
	Settings *handlers.SettingsHandler
	Contact  *handlers.ContactHandler
	Pages    *handlers.PagesHandler
	Session  *auth.SessionMiddleware
	Gate     *auth.RouteGate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	// Session resolution and the page gate run before everything else; the
	// gate is the sole enforcement point for the admin page prefix.
	app.Use(cfg.Session.Handle)
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.Pages.Home)
	app.Get("/login", cfg.Pages.Login)
	app.Get("/admin", cfg.Pages.Admin)
	app.Get("/admin/*", cfg.Pages.Admin)

	api := app.Group("/api")

	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/logout", cfg.Auth.Logout)

	// Public content reads plus the contact form.
	api.Get("/menu", cfg.Menu.List)
	api.Get("/menu/:id", cfg.Menu.Get)
	api.Get("/categories", cfg.Category.List)
	api.Get("/hero", cfg.Settings.GetHero)
	api.Get("/business-hours", cfg.Settings.GetHours)
	api.Get("/contact-info", cfg.Settings.GetContactInfo)
	api.Get("/social", cfg.Settings.GetSocialLinks)
	api.Post("/contact", cfg.Contact.Submit)

	// Admin mutations. RequireAdmin re-checks what the gate enforced for
	// pages, since API calls arrive outside the page prefix.
	admin := api.Group("", auth.RequireAdmin())
	admin.Post("/upload", cfg.Upload.Store)
	admin.Delete("/upload", cfg.Upload.Delete)

	admin.Post("/menu", cfg.Menu.Create)
	admin.Put("/menu/:id", cfg.Menu.Update)
	admin.Delete("/menu/:id", cfg.Menu.Delete)

	admin.Post("/categories", cfg.Category.Create)
	admin.Put("/categories/:id", cfg.Category.Update)
	admin.Delete("/categories/:id", cfg.Category.Delete)

	admin.Put("/hero", cfg.Settings.UpdateHero)
	admin.Put("/settings/hours", cfg.Settings.UpdateHours)
	admin.Put("/settings/contact", cfg.Settings.UpdateContactInfo)
	admin.Put("/settings/social", cfg.Settings.UpdateSocialLinks)

	admin.Get("/contact", cfg.Contact.List)
	admin.Delete("/contact/:id", cfg.Contact.Delete)

	// Password change needs a session but not the ADMIN role.
	api.Put("/settings/password", auth.RequireAuthenticated(), cfg.Auth.ChangePassword)
}
