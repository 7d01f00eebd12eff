package handler

import (
	"github.com/gofiber/fiber/v2"

	"contabil/internal/http/middleware"
	"contabil/internal/service"
)

// CreateClient creates a client record owned by the session user.
func CreateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ClientInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		client, err := svc.Create(c.UserContext(), middleware.SessionUser(c).ID, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(client)
	}
}

// ListClients lists the session user's clients, optionally filtered by ?search=.
func ListClients(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clients, err := svc.List(c.UserContext(), middleware.SessionUser(c).ID, c.Query("search"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(clients)
	}
}

// GetClient returns one client by ID.
func GetClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		client, err := svc.Get(c.UserContext(), middleware.SessionUser(c).ID, c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(client)
	}
}

// UpdateClient rewrites one client record.
func UpdateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ClientInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		client, err := svc.Update(c.UserContext(), middleware.SessionUser(c).ID, c.Params("id"), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(client)
	}
}

// DeleteClient removes one client record.
func DeleteClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), middleware.SessionUser(c).ID, c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
