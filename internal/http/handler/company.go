package handler

import (
	"github.com/gofiber/fiber/v2"

	"contabil/internal/http/middleware"
	"contabil/internal/service"
)

// CreateCompany registers a company owned by the session user.
func CreateCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CompanyInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		company, err := svc.Create(c.UserContext(), middleware.SessionUser(c).ID, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(company)
	}
}

// ListCompanies lists the session user's companies.
func ListCompanies(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companies, err := svc.List(c.UserContext(), middleware.SessionUser(c).ID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(companies)
	}
}

// GetCompany returns one company by ID.
func GetCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		company, err := svc.Get(c.UserContext(), middleware.SessionUser(c).ID, c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(company)
	}
}

// ListCompanyPeriods lists a company's synchronized filing periods.
func ListCompanyPeriods(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		periods, err := svc.Periods(c.UserContext(), middleware.SessionUser(c).ID, c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(periods)
	}
}

// SyncCompany synchronizes a company's filing periods from the consultation
// service and returns {inserted, total}.
func SyncCompany(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Periodo       string `json:"periodo"`
			DataPagamento string `json:"data_pagamento"`
			Force         bool   `json:"force"`
		}
		// An empty body means a full, non-forced sync.
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
			}
		}

		res, err := svc.Sync(c.UserContext(), service.SyncInput{
			UserID:        middleware.SessionUser(c).ID,
			CompanyID:     c.Params("id"),
			Periodo:       body.Periodo,
			DataPagamento: body.DataPagamento,
			Force:         body.Force,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}
