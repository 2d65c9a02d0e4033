/**
 * @description
 * Search API Handler.
 * Serves the global command-palette search across companies, projects and news.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resource-capital/backend/internal/services"
)

type SearchHandler struct {
	Service *services.SearchService
}

func NewSearchHandler(service *services.SearchService) *SearchHandler {
	return &SearchHandler{Service: service}
}

// Search returns grouped matches for the query string
// GET /api/v1/search?q=gold
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query is required"})
	}

	results := h.Service.Search(c.Context(), query)
	return c.JSON(results)
}
