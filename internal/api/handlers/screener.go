/**
 * @description
 * Screener API Handlers.
 * Runs the filter/sort/paginate pipeline over the bulk company list and manages
 * the user's saved queries.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/screener
 * - backend/internal/services
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/resource-capital/backend/internal/api/middleware"
	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/screener"
	"github.com/resource-capital/backend/internal/services"
	"gorm.io/gorm"
)

type ScreenerHandler struct {
	Companies *services.CompanyService
	Service   *services.ScreenerService
	Profiles  *services.ProfileService
}

func NewScreenerHandler(companies *services.CompanyService, service *services.ScreenerService, profiles *services.ProfileService) *ScreenerHandler {
	return &ScreenerHandler{
		Companies: companies,
		Service:   service,
		Profiles:  profiles,
	}
}

// ScreenRequest carries the filter state, sort and page for one screener run
type ScreenRequest struct {
	Filters screener.FilterState `json:"filters"`
	Sort    screener.SortSpec    `json:"sort"`
	Page    int                  `json:"page"`
}

// Screen applies filters to the company universe and returns one page
// POST /api/v1/screener/screen
func (h *ScreenerHandler) Screen(c *fiber.Ctx) error {
	var req ScreenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	companies, err := h.Companies.GetCompanies(c.Context())
	if err != nil {
		logger.Error("ScreenerHandler: Failed to fetch companies: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch companies",
		})
	}

	result := screener.Apply(companies, req.Filters, req.Sort, req.Page)
	return c.JSON(result)
}

// SaveQueryRequest names a filter state for later reuse
type SaveQueryRequest struct {
	Name    string               `json:"name"`
	Filters screener.FilterState `json:"filters"`
	Sort    screener.SortSpec    `json:"sort"`
}

// SaveQuery stores a named screener query for the authenticated user
// POST /api/v1/screener/queries
func (h *ScreenerHandler) SaveQuery(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	user, err := h.Profiles.GetByAuthID(c.Context(), authID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req SaveQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query name is required",
		})
	}

	query, err := h.Service.SaveQuery(c.Context(), user.ID, req.Name, req.Filters, req.Sort)
	if err != nil {
		logger.Error("ScreenerHandler: Failed to save query: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save query",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(query)
}

// ListQueries returns the user's saved screener queries
// GET /api/v1/screener/queries
func (h *ScreenerHandler) ListQueries(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	user, err := h.Profiles.GetByAuthID(c.Context(), authID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	queries, err := h.Service.ListQueries(c.Context(), user.ID)
	if err != nil {
		logger.Error("ScreenerHandler: Failed to list queries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch saved queries",
		})
	}

	return c.JSON(fiber.Map{
		"queries": queries,
		"count":   len(queries),
	})
}

// DeleteQuery removes one of the user's saved queries
// DELETE /api/v1/screener/queries/:id
func (h *ScreenerHandler) DeleteQuery(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	user, err := h.Profiles.GetByAuthID(c.Context(), authID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	queryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query ID"})
	}

	if err := h.Service.DeleteQuery(c.Context(), user.ID, queryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Query not found"})
		}
		logger.Error("ScreenerHandler: Failed to delete query: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete query",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
