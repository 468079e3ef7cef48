package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"incidentapi/internal/auth"
)

// UsernameLocalKey is the Fiber locals key holding the authenticated username.
const UsernameLocalKey = "username"

// Auth reads the caller's username from header and stores it as the principal of the
// request's user context. Requests without the header continue anonymously.
func Auth(header string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if username := strings.TrimSpace(c.Get(header)); username != "" {
			c.SetUserContext(auth.WithPrincipal(c.UserContext(), auth.Principal{Username: username}))
			c.Locals(UsernameLocalKey, username)
		}
		return c.Next()
	}
}
