/**
 * @description
 * Profile API Handlers.
 * Handles user synchronization and profile settings.
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
	"github.com/resource-capital/backend/internal/services"
	"gorm.io/gorm"
)

// ProfileHandler handles profile-related requests
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// SyncUserRequest defines payload for syncing user
type SyncUserRequest struct {
	Email string `json:"email"`
}

// SyncUser ensures the user exists in the database
// POST /api/v1/profile/sync
func (h *ProfileHandler) SyncUser(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		logger.Error("SyncUser: Failed to get user ID from context: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req SyncUserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("SyncUser: Failed to parse request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.profileService.SyncUser(c.Context(), authID, req.Email)
	if err != nil {
		logger.Error("SyncUser: Failed to sync user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to sync user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// GetMe returns the current authenticated user
// GET /api/v1/profile/me
func (h *ProfileHandler) GetMe(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	user, err := h.profileService.GetByAuthID(c.Context(), authID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateProfile applies a partial update to the user's settings
// PATCH /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var update services.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.profileService.UpdateProfile(c.Context(), authID, update)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		logger.Error("UpdateProfile: Failed to update profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
