/**
 * @description
 * Metal spot price database models.
 * Spot rows are overwritten on each refresh; history rows are append-only.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

import "time"

// MetalPrice represents the latest spot price for one commodity
type MetalPrice struct {
	Symbol        string     `gorm:"primaryKey;column:symbol" json:"symbol"` // e.g. "XAU", "XAG", "HG"
	Name          string     `gorm:"column:name" json:"name"`
	Price         float64    `gorm:"column:price" json:"price"`
	Currency      string     `gorm:"column:currency;default:USD" json:"currency"`
	Unit          string     `gorm:"column:unit" json:"unit"` // e.g. "oz", "lb", "t"
	ChangePercent float64    `gorm:"column:change_percent" json:"change_percent"`
	UpdatedAt     *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (MetalPrice) TableName() string {
	return "metal_prices"
}

// MetalPriceHistory is one point of a commodity's price time series
type MetalPriceHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Symbol     string    `gorm:"column:symbol;index;not null" json:"symbol"`
	Price      float64   `gorm:"column:price" json:"price"`
	RecordedAt time.Time `gorm:"column:recorded_at;index" json:"recorded_at"`
}

func (MetalPriceHistory) TableName() string {
	return "metal_prices_history"
}
