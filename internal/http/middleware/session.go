package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"contabil/internal/model"
)

const (
	// SessionCookie is the cookie carrying the session.
	SessionCookie = "session"
	// UserLocalKey is the key under which the authenticated user is stored
	// in Fiber's context locals.
	UserLocalKey = "user"
)

// UserResolver resolves a session value to an account. Implemented by the
// auth service.
type UserResolver interface {
	Me(ctx context.Context, userID string) (*model.User, error)
}

// Session authenticates requests via the session cookie. Unauthenticated
// requests get 401 without reaching the handler.
func Session(resolver UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookie)
		if id == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}

		user, err := resolver.Me(c.UserContext(), id)
		if err != nil {
			c.ClearCookie(SessionCookie)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "session is no longer valid",
			})
		}

		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// SessionUser returns the authenticated user stored by Session. It is only
// meaningful behind the Session middleware.
func SessionUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}
