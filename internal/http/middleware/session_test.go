package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"contabil/internal/model"
	"contabil/internal/service"
	servicemocks "contabil/internal/service/mocks"
)

func TestSession(t *testing.T) {
	auth := new(servicemocks.MockAuthService)
	auth.On("Me", mock.Anything, "user-1").Return(&model.User{ID: "user-1", Email: "ana@example.com"}, nil)
	auth.On("Me", mock.Anything, "ghost").Return(nil, service.ErrNotFound)

	app := fiber.New()
	app.Use(Session(auth))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(SessionUser(c).ID)
	})

	t.Run("missing cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("stale session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "ghost"})
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "user-1"})
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
