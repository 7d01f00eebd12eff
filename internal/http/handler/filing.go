package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"contabil/internal/model"
	"contabil/internal/service"
)

func filingQuery(c *fiber.Ctx) service.FilingQuery {
	year, _ := strconv.Atoi(c.Query("year"))
	return service.FilingQuery{
		ClientID: c.Query("client_id"),
		Year:     year,
		Month:    c.Query("month"),
		Search:   c.Query("search"),
	}
}

// CreateMonthlyService records a monthly filing service.
func CreateMonthlyService(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.MonthlyService
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		out, err := svc.CreateMonthly(c.UserContext(), &in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// ListMonthlyServices lists monthly filing services with optional filters.
func ListMonthlyServices(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListMonthly(c.UserContext(), filingQuery(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(items)
	}
}

// UpdateMonthlyService rewrites a monthly filing service.
func UpdateMonthlyService(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.MonthlyService
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		in.ID = c.Params("id")
		out, err := svc.UpdateMonthly(c.UserContext(), &in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteMonthlyService removes a monthly filing service.
func DeleteMonthlyService(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteMonthly(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CreateAnnualService records an annual filing service.
func CreateAnnualService(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.AnnualService
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		out, err := svc.CreateAnnual(c.UserContext(), &in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// ListAnnualServices lists annual filing services with optional filters.
func ListAnnualServices(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListAnnual(c.UserContext(), filingQuery(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(items)
	}
}

// UpdateAnnualService rewrites an annual filing service.
func UpdateAnnualService(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.AnnualService
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		in.ID = c.Params("id")
		out, err := svc.UpdateAnnual(c.UserContext(), &in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteAnnualService removes an annual filing service.
func DeleteAnnualService(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteAnnual(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CreateIrpfEntry records an IRPF filing.
func CreateIrpfEntry(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.IrpfEntry
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		out, err := svc.CreateIrpf(c.UserContext(), &in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// ListIrpfEntries lists IRPF filings with optional filters.
func ListIrpfEntries(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListIrpf(c.UserContext(), filingQuery(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(items)
	}
}

// UpdateIrpfEntry rewrites an IRPF filing.
func UpdateIrpfEntry(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.IrpfEntry
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		in.ID = c.Params("id")
		out, err := svc.UpdateIrpf(c.UserContext(), &in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteIrpfEntry removes an IRPF filing.
func DeleteIrpfEntry(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteIrpf(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
