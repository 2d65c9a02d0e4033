/**
 * @description
 * News API Handlers.
 * Serves the aggregated news feed and full article bodies.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/services"
)

type NewsHandler struct {
	Service *services.NewsService
}

func NewNewsHandler(service *services.NewsService) *NewsHandler {
	return &NewsHandler{Service: service}
}

// GetNews returns the latest articles, optionally narrowed to one ticker
// GET /api/v1/news?ticker=XYZ&limit=20
func (h *NewsHandler) GetNews(c *fiber.Ctx) error {
	ticker := c.Query("ticker")
	limit := c.QueryInt("limit", 0)

	articles, err := h.Service.GetNews(c.Context(), ticker, limit)
	if err != nil {
		logger.Error("NewsHandler: Failed to fetch news: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch news",
		})
	}

	return c.JSON(articles)
}

// GetArticleContent fetches the full article body on demand
// GET /api/v1/news/:id/content
func (h *NewsHandler) GetArticleContent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid article ID"})
	}

	content, fallback, err := h.Service.GetArticleContent(c.Context(), uint(id))
	if err != nil {
		logger.Error("NewsHandler: Failed to fetch article content: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch article content",
		})
	}
	if content == "" && !fallback {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Article not found"})
	}

	return c.JSON(fiber.Map{
		"content":  content,
		"fallback": fallback,
	})
}
