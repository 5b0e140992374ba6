package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// PagesHandler serves the page entry points the route gate protects. The
// actual UI is a client bundle; these endpoints exist so gate redirects have
// somewhere to land.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Home handles GET /.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!doctype html><title>Eftah Fast Food</title><div id="root"></div>`)
}

// Login handles GET /login. The gate already bounced authenticated admins to
// the admin home.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!doctype html><title>Sign in</title><div id="root" data-page="login"></div>`)
}

// Admin handles GET /admin and everything under it; only admins get here.
func (h *PagesHandler) Admin(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!doctype html><title>Admin</title><div id="root" data-page="admin"></div>`)
}
