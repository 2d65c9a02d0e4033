/**
 * @description
 * Report API Handlers.
 * Handles PDF report uploads, listing and deletion.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 * - backend/internal/api/middleware
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/resource-capital/backend/internal/api/middleware"
	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/models"
	"github.com/resource-capital/backend/internal/services"
	"gorm.io/gorm"
)

// ReportHandler handles report upload requests
type ReportHandler struct {
	db            *gorm.DB
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(db *gorm.DB, reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		db:            db,
		reportService: reportService,
	}
}

// UploadReport accepts a multipart PDF upload with title/ticker fields
// POST /api/v1/reports
func (h *ReportHandler) UploadReport(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := h.db.Where("auth_id = ?", authID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}

	if err := h.reportService.ValidateUpload(fileHeader); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}

	report := &models.Report{
		ID:       uuid.New(),
		UserID:   user.ID,
		Ticker:   c.FormValue("ticker"),
		Title:    title,
		FileSize: fileHeader.Size,
	}

	path, err := h.reportService.StoragePath(report.ID)
	if err != nil {
		logger.Error("ReportHandler: Failed to resolve storage path: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store report",
		})
	}
	report.FilePath = path

	if err := c.SaveFile(fileHeader, path); err != nil {
		logger.Error("ReportHandler: Failed to save report file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store report",
		})
	}

	if err := h.reportService.CreateReport(c.Context(), report); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save report metadata",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// ListReports returns the newest reports, optionally narrowed to a ticker
// GET /api/v1/reports?ticker=XYZ&limit=50
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	ticker := c.Query("ticker")
	limit := c.QueryInt("limit", 0)

	reports, err := h.reportService.ListReports(c.Context(), ticker, limit)
	if err != nil {
		logger.Error("ReportHandler: Failed to list reports: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reports",
		})
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"count":   len(reports),
	})
}

// DeleteReport removes one of the user's reports
// DELETE /api/v1/reports/:id
func (h *ReportHandler) DeleteReport(c *fiber.Ctx) error {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := h.db.Where("auth_id = ?", authID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	if err := h.reportService.DeleteReport(c.Context(), user.ID, reportID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
		}
		logger.Error("ReportHandler: Failed to delete report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete report",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
