/**
 * @description
 * Company API Handlers.
 * Exposes endpoints to fetch the screener universe and company detail pages.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/services"
)

type CompanyHandler struct {
	Service *services.CompanyService
	Insider *services.InsiderService
}

func NewCompanyHandler(service *services.CompanyService, insider *services.InsiderService) *CompanyHandler {
	return &CompanyHandler{Service: service, Insider: insider}
}

// GetCompanies returns the full screener universe with live quote fields attached
// GET /api/v1/companies
func (h *CompanyHandler) GetCompanies(c *fiber.Ctx) error {
	companies, err := h.Service.GetCompanies(c.Context())
	if err != nil {
		logger.Error("CompanyHandler: Failed to fetch companies: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch companies",
		})
	}
	return c.JSON(companies)
}

// GetCompany returns the full detail payload for one ticker
// GET /api/v1/companies/:ticker
func (h *CompanyHandler) GetCompany(c *fiber.Ctx) error {
	ticker := c.Params("ticker")
	if ticker == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Ticker is required"})
	}

	profile, err := h.Service.GetCompanyProfile(c.Context(), ticker)
	if err != nil {
		logger.Error("CompanyHandler: Failed to fetch profile for %s: %v", ticker, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch company",
		})
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company not found"})
	}

	// Sentiment is supplementary; its failure never blanks the profile page
	sentiment, err := h.Insider.GetSentiment(c.Context(), profile.Company.Ticker, 0)
	if err != nil {
		logger.Error("CompanyHandler: Failed to fetch insider sentiment for %s: %v", ticker, err)
	} else {
		profile.Sentiment = sentiment
	}

	return c.JSON(profile)
}
