/**
 * @description
 * Screener Service for saved query persistence.
 * The filter pipeline itself is pure (internal/screener); this service only
 * stores and retrieves a user's named filter states.
 *
 * @dependencies
 * - gorm.io/gorm
 * - internal/models
 */

package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/models"
	"github.com/resource-capital/backend/internal/screener"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ScreenerService handles saved screener query operations
type ScreenerService struct {
	db *gorm.DB
}

// NewScreenerService creates a new ScreenerService
func NewScreenerService(db *gorm.DB) *ScreenerService {
	return &ScreenerService{
		db: db,
	}
}

// SaveQuery stores a named filter state for the user
func (s *ScreenerService) SaveQuery(ctx context.Context, userID uuid.UUID, name string, filters screener.FilterState, sortSpec screener.SortSpec) (*models.SavedScreenerQuery, error) {
	if name == "" {
		return nil, fmt.Errorf("query name is required")
	}

	payload, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize filters: %w", err)
	}

	query := &models.SavedScreenerQuery{
		UserID:   userID,
		Name:     name,
		Filters:  datatypes.JSON(payload),
		SortBy:   sortSpec.Column,
		SortDesc: sortSpec.Descending,
	}

	if err := s.db.WithContext(ctx).Create(query).Error; err != nil {
		logger.Error("ScreenerService: Failed to save query: %v", err)
		return nil, err
	}

	return query, nil
}

// ListQueries returns the user's saved queries, newest first
func (s *ScreenerService) ListQueries(ctx context.Context, userID uuid.UUID) ([]models.SavedScreenerQuery, error) {
	var queries []models.SavedScreenerQuery
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&queries).Error; err != nil {
		return nil, err
	}
	return queries, nil
}

// DeleteQuery removes a saved query; scoped to the owning user
func (s *ScreenerService) DeleteQuery(ctx context.Context, userID, queryID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", queryID, userID).
		Delete(&models.SavedScreenerQuery{})

	if result.Error != nil {
		logger.Error("ScreenerService: Failed to delete query: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
