package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/eftah/restaurant-service/internal/domain"
	"github.com/eftah/restaurant-service/internal/repository"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	ID    string
	Name  string
	Email string
	Role  domain.Role
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == domain.RoleAdmin
}

// SessionMiddleware resolves the session token (cookie or bearer header) into
// a Principal. Claims are refreshed from the account store on every request,
// so a role change or rename takes effect without re-login. Invalid or absent
// tokens leave the request anonymous; enforcement happens downstream.
type SessionMiddleware struct {
	tokens     *TokenManager
	users      repository.UserRepository
	cookieName string
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, users repository.UserRepository, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, users: users, cookieName: cookieName}
}

// Handle attaches a refreshed Principal to the request context when a valid
// token is present.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := m.readToken(c)
	if tokenStr == "" {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return c.Next()
	}

	principal := &Principal{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}

	// Re-read the account so current role/name/email win over token state.
	// A deleted account keeps whatever identity the token already carried.
	if user, err := m.users.GetByEmail(c.UserContext(), claims.Email); err == nil {
		principal.ID = user.ID
		principal.Name = user.Name
		principal.Email = user.Email
		principal.Role = user.Role
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func (m *SessionMiddleware) readToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(m.cookieName); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RouteGate enforces the admin-area access rules with redirects, mirroring
// what a browser-facing site needs. It is the sole enforcement point for the
// admin page prefix; API handlers re-check the role defensively.
type RouteGate struct {
	AdminPrefix string
	LoginPath   string
	AdminHome   string
	PublicHome  string
}

// NewRouteGate returns a gate with the default paths.
func NewRouteGate() *RouteGate {
	return &RouteGate{
		AdminPrefix: "/admin",
		LoginPath:   "/login",
		AdminHome:   "/admin",
		PublicHome:  "/",
	}
}

// Handle runs on every request before handler logic.
//
// State machine over (authenticated, admin route, login route, role):
//   - login route: authenticated ADMIN goes to the admin home, everyone else
//     may render the login page.
//   - admin route: anonymous callers go to login with the original
//     destination in ?from=; authenticated non-admins go to the public home.
//   - all other routes pass through.
func (g *RouteGate) Handle(c *fiber.Ctx) error {
	principal, authenticated := PrincipalFromContext(c)
	isAdmin := authenticated && principal.IsAdmin()
	requestPath := c.Path()

	if requestPath == g.LoginPath {
		if isAdmin {
			return c.Redirect(g.AdminHome, fiber.StatusFound)
		}
		return c.Next()
	}

	if strings.HasPrefix(requestPath, g.AdminPrefix) {
		if !authenticated {
			from := url.QueryEscape(c.OriginalURL())
			return c.Redirect(g.LoginPath+"?from="+from, fiber.StatusFound)
		}
		if !isAdmin {
			return c.Redirect(g.PublicHome, fiber.StatusFound)
		}
	}

	return c.Next()
}
