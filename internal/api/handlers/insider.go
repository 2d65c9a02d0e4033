/**
 * @description
 * Insider activity API Handlers.
 * Serves the buy/sell sentiment summary and the raw transaction window.
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

type InsiderHandler struct {
	Service *services.InsiderService
}

func NewInsiderHandler(service *services.InsiderService) *InsiderHandler {
	return &InsiderHandler{Service: service}
}

// GetSentiment returns the bucketed buy/sell summary for one ticker
// GET /api/v1/insiders/:ticker/sentiment?days=90
func (h *InsiderHandler) GetSentiment(c *fiber.Ctx) error {
	ticker := c.Params("ticker")
	if ticker == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Ticker is required"})
	}

	days := c.QueryInt("days", 0)

	sentiment, err := h.Service.GetSentiment(c.Context(), ticker, days)
	if err != nil {
		logger.Error("InsiderHandler: Failed to fetch sentiment for %s: %v", ticker, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch insider sentiment",
		})
	}

	return c.JSON(sentiment)
}

// GetTransactions returns the raw insider transactions for one ticker
// GET /api/v1/insiders/:ticker/transactions?days=90
func (h *InsiderHandler) GetTransactions(c *fiber.Ctx) error {
	ticker := c.Params("ticker")
	if ticker == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Ticker is required"})
	}

	days := c.QueryInt("days", 0)

	transactions, err := h.Service.GetTransactions(c.Context(), ticker, days)
	if err != nil {
		logger.Error("InsiderHandler: Failed to fetch transactions for %s: %v", ticker, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch insider transactions",
		})
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
		"count":        len(transactions),
	})
}
