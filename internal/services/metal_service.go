/**
 * @description
 * Service layer for commodity spot prices.
 * Refreshes spot rows from the metals vendor, appends the price history series,
 * caches the tape in Redis, and publishes ticks to the SSE ticker channel.
 *
 * @dependencies
 * - internal/integrations/metalsapi
 * - internal/models
 * - gorm.io/gorm
 * - github.com/redis/go-redis/v9
 */

package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/resource-capital/backend/internal/integrations/metalsapi"
	"github.com/resource-capital/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	CacheKeyMetals = "metals:spot"
	MetalsCacheTTL = 5 * time.Minute
)

type MetalService struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Vendor *metalsapi.Client
}

func NewMetalService(db *gorm.DB, redis *redis.Client, vendor *metalsapi.Client) *MetalService {
	return &MetalService{
		DB:     db,
		Redis:  redis,
		Vendor: vendor,
	}
}

// SyncMetalPrices refreshes spot prices from the vendor and appends history
func (s *MetalService) SyncMetalPrices(ctx context.Context) error {
	rates, err := s.Vendor.GetSpotPrices(ctx)
	if err != nil {
		return err
	}

	if len(rates) == 0 {
		return nil
	}

	now := time.Now()
	spots := make([]models.MetalPrice, 0, len(rates))
	history := make([]models.MetalPriceHistory, 0, len(rates))

	for _, rate := range rates {
		symbol := strings.ToUpper(strings.TrimSpace(rate.Symbol))
		if symbol == "" {
			continue
		}
		spots = append(spots, models.MetalPrice{
			Symbol:        symbol,
			Name:          rate.Name,
			Price:         rate.Price,
			Currency:      rate.Currency,
			Unit:          rate.Unit,
			ChangePercent: rate.ChangePercent,
			UpdatedAt:     &now,
		})
		history = append(history, models.MetalPriceHistory{
			Symbol:     symbol,
			Price:      rate.Price,
			RecordedAt: now,
		})
	}

	if len(spots) == 0 {
		return nil
	}

	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"price",
			"currency",
			"unit",
			"change_percent",
			"updated_at",
		}),
	}).Create(&spots).Error; err != nil {
		return err
	}

	if err := s.DB.WithContext(ctx).Create(&history).Error; err != nil {
		log.Printf("Failed to append metal price history: %v", err)
	}

	data, err := json.Marshal(spots)
	if err != nil {
		log.Printf("Failed to marshal metals for cache: %v", err)
	} else {
		if err := s.Redis.Set(ctx, CacheKeyMetals, data, MetalsCacheTTL).Err(); err != nil {
			log.Printf("Failed to set metals cache: %v", err)
		}
		if err := s.Redis.Publish(ctx, TickerUpdateChannel, data).Err(); err != nil {
			log.Printf("Failed to publish metal ticks: %v", err)
		}
	}

	return nil
}

// GetMetalPrices returns the spot tape, preferring Cache -> DB
func (s *MetalService) GetMetalPrices(ctx context.Context) ([]models.MetalPrice, error) {
	val, err := s.Redis.Get(ctx, CacheKeyMetals).Result()
	if err == nil {
		var spots []models.MetalPrice
		if err := json.Unmarshal([]byte(val), &spots); err == nil {
			return spots, nil
		}
		// If unmarshal fails, fall through to DB
	}

	var spots []models.MetalPrice
	if err := s.DB.WithContext(ctx).Order("symbol ASC").Find(&spots).Error; err != nil {
		return nil, err
	}

	return spots, nil
}

// GetHistory returns the time series for one metal over the trailing N days
func (s *MetalService) GetHistory(ctx context.Context, symbol string, days int) ([]models.MetalPriceHistory, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if days <= 0 || days > 365 {
		days = 30
	}

	cutoff := time.Now().AddDate(0, 0, -days)

	var history []models.MetalPriceHistory
	if err := s.DB.WithContext(ctx).
		Where("symbol = ? AND recorded_at >= ?", symbol, cutoff).
		Order("recorded_at ASC").
		Find(&history).Error; err != nil {
		return nil, err
	}

	return history, nil
}
