package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"contabil/internal/http/middleware"
	"contabil/internal/service"
)

const sessionTTL = 7 * 24 * time.Hour

func setSession(c *fiber.Ctx, userID string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    userID,
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Register creates an account and opens a session for it.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		user, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}

		setSession(c, user.ID)
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// Login verifies credentials and opens a session.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		user, err := svc.Login(c.UserContext(), in.Email, in.Password)
		if err != nil {
			return serviceError(c, err)
		}

		setSession(c, user.ID)
		return c.JSON(user)
	}
}

// Logout clears the session cookie.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.ClearCookie(middleware.SessionCookie)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me returns the authenticated account.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(middleware.SessionUser(c))
	}
}
