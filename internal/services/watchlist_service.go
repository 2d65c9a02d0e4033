/**
 * @description
 * Watchlist Service for starred tickers.
 * Manages a user's followed companies in the database.
 *
 * @dependencies
 * - gorm.io/gorm
 * - internal/models
 */

package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/models"
	"gorm.io/gorm"
)

// WatchlistService handles starred ticker operations
type WatchlistService struct {
	db *gorm.DB
}

// NewWatchlistService creates a new WatchlistService
func NewWatchlistService(db *gorm.DB) *WatchlistService {
	return &WatchlistService{
		db: db,
	}
}

// AddTicker adds a company to the user's watchlist
func (s *WatchlistService) AddTicker(ctx context.Context, userID uuid.UUID, ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil
	}

	entry := &models.WatchlistEntry{
		UserID:    userID,
		Ticker:    ticker,
		CreatedAt: time.Now(),
	}

	// Use FirstOrCreate to avoid duplicates
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND ticker = ?", userID, ticker).
		FirstOrCreate(entry)

	if result.Error != nil {
		logger.Error("WatchlistService: Failed to add ticker: %v", result.Error)
		return result.Error
	}

	return nil
}

// RemoveTicker removes a company from the user's watchlist
func (s *WatchlistService) RemoveTicker(ctx context.Context, userID uuid.UUID, ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND ticker = ?", userID, ticker).
		Delete(&models.WatchlistEntry{})

	if result.Error != nil {
		logger.Error("WatchlistService: Failed to remove ticker: %v", result.Error)
		return result.Error
	}

	return nil
}

// GetWatchlist returns the user's starred companies with current quote fields
func (s *WatchlistService) GetWatchlist(ctx context.Context, userID uuid.UUID) ([]models.WatchlistItem, error) {
	var entries []models.WatchlistEntry

	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries)

	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]models.WatchlistItem, 0, len(entries))
	for _, entry := range entries {
		var company models.Company
		if err := s.db.WithContext(ctx).
			Where("ticker = ?", entry.Ticker).
			First(&company).Error; err != nil {
			// Skip tickers that no longer exist
			continue
		}

		items = append(items, models.WatchlistItem{
			WatchlistEntry:   entry,
			Name:             company.Name,
			Exchange:         company.Exchange,
			Commodity:        company.Commodity,
			CurrentPrice:     company.CurrentPrice,
			DayChangePercent: company.DayChangePercent,
			MarketCap:        company.MarketCap,
		})
	}

	return items, nil
}

// GetWatchlistTickers returns just the tickers in the user's watchlist
func (s *WatchlistService) GetWatchlistTickers(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var tickers []string

	result := s.db.WithContext(ctx).
		Model(&models.WatchlistEntry{}).
		Where("user_id = ?", userID).
		Pluck("ticker", &tickers)

	if result.Error != nil {
		return nil, result.Error
	}

	return tickers, nil
}

// IsWatched checks if the user has starred a specific ticker
func (s *WatchlistService) IsWatched(ctx context.Context, userID uuid.UUID, ticker string) (bool, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	var count int64
	result := s.db.WithContext(ctx).
		Model(&models.WatchlistEntry{}).
		Where("user_id = ? AND ticker = ?", userID, ticker).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// ToggleTicker toggles watch status and returns the new state
func (s *WatchlistService) ToggleTicker(ctx context.Context, userID uuid.UUID, ticker string) (bool, error) {
	isWatched, err := s.IsWatched(ctx, userID, ticker)
	if err != nil {
		return false, err
	}

	if isWatched {
		err = s.RemoveTicker(ctx, userID, ticker)
		return false, err
	}

	err = s.AddTicker(ctx, userID, ticker)
	return true, err
}
