/**
 * @description
 * Metal price API Handlers.
 * Serves the commodity spot tape and per-metal history series.
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

type MetalHandler struct {
	Service *services.MetalService
}

func NewMetalHandler(service *services.MetalService) *MetalHandler {
	return &MetalHandler{Service: service}
}

// GetSpotPrices returns the current commodity tape
// GET /api/v1/metals
func (h *MetalHandler) GetSpotPrices(c *fiber.Ctx) error {
	prices, err := h.Service.GetMetalPrices(c.Context())
	if err != nil {
		logger.Error("MetalHandler: Failed to fetch spot prices: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch metal prices",
		})
	}
	return c.JSON(prices)
}

// GetHistory returns the trailing price series for one metal
// GET /api/v1/metals/:symbol/history?days=30
func (h *MetalHandler) GetHistory(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	if symbol == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Symbol is required"})
	}

	days := c.QueryInt("days", 0)

	history, err := h.Service.GetHistory(c.Context(), symbol, days)
	if err != nil {
		logger.Error("MetalHandler: Failed to fetch history for %s: %v", symbol, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch price history",
		})
	}

	return c.JSON(history)
}
