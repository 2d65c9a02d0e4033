/**
 * @description
 * Watchlist API Handlers.
 * Handles starred ticker operations.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 * - backend/internal/api/middleware
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resource-capital/backend/internal/api/middleware"
	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/models"
	"github.com/resource-capital/backend/internal/services"
	"gorm.io/gorm"
)

// WatchlistHandler handles watchlist-related requests
type WatchlistHandler struct {
	db               *gorm.DB
	watchlistService *services.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(db *gorm.DB, watchlistService *services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		db:               db,
		watchlistService: watchlistService,
	}
}

// WatchRequest represents a watch request body
type WatchRequest struct {
	Ticker string `json:"ticker"`
}

// WatchTicker adds a company to the watchlist
// POST /api/v1/watchlist/watch
func (h *WatchlistHandler) WatchTicker(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := h.db.Where("auth_id = ?", authID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req WatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Ticker == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Ticker is required",
		})
	}

	err = h.watchlistService.AddTicker(c.Context(), user.ID, req.Ticker)
	if err != nil {
		logger.Error("WatchlistHandler: Failed to add ticker: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add ticker",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"watched": true,
		"ticker":  req.Ticker,
	})
}

// UnwatchTicker removes a company from the watchlist
// DELETE /api/v1/watchlist/:ticker
func (h *WatchlistHandler) UnwatchTicker(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := h.db.Where("auth_id = ?", authID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	ticker := c.Params("ticker")
	if ticker == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Ticker is required",
		})
	}

	err = h.watchlistService.RemoveTicker(c.Context(), user.ID, ticker)
	if err != nil {
		logger.Error("WatchlistHandler: Failed to remove ticker: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove ticker",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"watched": false,
		"ticker":  ticker,
	})
}

// ToggleWatch toggles watch status
// POST /api/v1/watchlist/toggle
func (h *WatchlistHandler) ToggleWatch(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := h.db.Where("auth_id = ?", authID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req WatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Ticker == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Ticker is required",
		})
	}

	isWatched, err := h.watchlistService.ToggleTicker(c.Context(), user.ID, req.Ticker)
	if err != nil {
		logger.Error("WatchlistHandler: Failed to toggle watch: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to toggle watch",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"watched": isWatched,
		"ticker":  req.Ticker,
	})
}

// GetWatchlist returns the user's watchlist
// GET /api/v1/watchlist
func (h *WatchlistHandler) GetWatchlist(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := h.db.Where("auth_id = ?", authID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	watchlist, err := h.watchlistService.GetWatchlist(c.Context(), user.ID)
	if err != nil {
		logger.Error("WatchlistHandler: Failed to get watchlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch watchlist",
		})
	}

	return c.JSON(fiber.Map{
		"watchlist": watchlist,
		"count":     len(watchlist),
	})
}

// CheckIsWatched checks if a ticker is on the watchlist
// GET /api/v1/watchlist/check/:ticker
func (h *WatchlistHandler) CheckIsWatched(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := h.db.Where("auth_id = ?", authID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	ticker := c.Params("ticker")
	isWatched, err := h.watchlistService.IsWatched(c.Context(), user.ID, ticker)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check watch status",
		})
	}

	return c.JSON(fiber.Map{
		"is_watched": isWatched,
		"ticker":     ticker,
	})
}
