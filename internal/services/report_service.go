/**
 * @description
 * Report Service for user-uploaded PDFs.
 * Validates uploads (PDF only, size cap), stores files on disk, and manages
 * the metadata rows. Writes are simple single-row operations.
 *
 * @dependencies
 * - gorm.io/gorm
 * - internal/models
 * - internal/config
 */

package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/resource-capital/backend/internal/config"
	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/models"
	"gorm.io/gorm"
)

// ReportService handles report upload metadata
type ReportService struct {
	db  *gorm.DB
	cfg config.ReportsConfig
}

// NewReportService creates a new ReportService
func NewReportService(db *gorm.DB, cfg config.ReportsConfig) *ReportService {
	return &ReportService{
		db:  db,
		cfg: cfg,
	}
}

// ValidateUpload rejects non-PDF or oversized files before anything touches disk
func (s *ReportService) ValidateUpload(header *multipart.FileHeader) error {
	if header == nil {
		return fmt.Errorf("file is required")
	}
	if header.Size > s.cfg.MaxSizeBytes {
		return fmt.Errorf("file exceeds the %dMB limit", s.cfg.MaxSizeBytes/(1024*1024))
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return fmt.Errorf("only PDF files are accepted")
	}
	contentType := header.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/pdf" {
		return fmt.Errorf("only PDF files are accepted")
	}
	return nil
}

// StoragePath returns the on-disk destination for a new report, creating the
// storage directory on first use
func (s *ReportService) StoragePath(reportID uuid.UUID) (string, error) {
	if err := os.MkdirAll(s.cfg.StorageDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report storage dir: %w", err)
	}
	return filepath.Join(s.cfg.StorageDir, reportID.String()+".pdf"), nil
}

// CreateReport inserts the metadata row after the file has been written
func (s *ReportService) CreateReport(ctx context.Context, report *models.Report) error {
	if report.Title == "" {
		return fmt.Errorf("title is required")
	}
	report.Ticker = strings.ToUpper(strings.TrimSpace(report.Ticker))

	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		logger.Error("ReportService: Failed to create report: %v", err)
		return err
	}
	return nil
}

// ListReports returns the newest reports, optionally narrowed to a ticker
func (s *ReportService) ListReports(ctx context.Context, ticker string, limit int) ([]models.Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if ticker != "" {
		query = query.Where("ticker = ?", strings.ToUpper(strings.TrimSpace(ticker)))
	}

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// DeleteReport removes the metadata row (owner-scoped) and the file best-effort
func (s *ReportService) DeleteReport(ctx context.Context, userID, reportID uuid.UUID) error {
	var report models.Report
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reportID, userID).
		First(&report).Error; err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&report).Error; err != nil {
		logger.Error("ReportService: Failed to delete report: %v", err)
		return err
	}

	if report.FilePath != "" {
		if err := os.Remove(report.FilePath); err != nil && !os.IsNotExist(err) {
			logger.Error("ReportService: Failed to remove report file %s: %v", report.FilePath, err)
		}
	}

	return nil
}
