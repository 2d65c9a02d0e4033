/**
 * @description
 * Company database model.
 * Maps to the 'companies' table in PostgreSQL.
 * Price/market-cap fields are pointers: a listing with no trade data stores NULL,
 * and the screener treats NULL as "cannot satisfy a numeric filter".
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

import (
	"time"
)

// Company represents a listed mining company
// Maps to the 'companies' table
type Company struct {
	Ticker            string   `gorm:"primaryKey;column:ticker" json:"ticker"`
	Name              string   `gorm:"column:name" json:"name"`
	Exchange          string   `gorm:"column:exchange;index" json:"exchange"`
	Commodity         string   `gorm:"column:commodity;index" json:"commodity"`
	Currency          string   `gorm:"column:currency;default:CAD" json:"currency"`
	Description       string   `gorm:"column:description" json:"description"`
	Website           string   `gorm:"column:website" json:"website"`
	CurrentPrice      *float64 `gorm:"column:current_price" json:"current_price"`
	DayChangePercent  *float64 `gorm:"column:day_change_percent" json:"day_change_percent"`
	MarketCap         *float64 `gorm:"column:market_cap" json:"market_cap"`
	Volume            *float64 `gorm:"column:volume" json:"volume"`
	Week52High        *float64 `gorm:"column:week_52_high" json:"week_52_high"`
	Week52Low         *float64 `gorm:"column:week_52_low" json:"week_52_low"`
	SharesOutstanding *float64 `gorm:"column:shares_outstanding" json:"shares_outstanding"`
	Active            bool     `gorm:"column:active;default:true" json:"active"`
	ProjectCount      int      `gorm:"column:project_count;default:0" json:"project_count"`

	LastUpdated *time.Time `gorm:"column:last_updated" json:"last_updated"`

	// Realtime quote fields attached from Redis, never persisted
	LivePrice         *float64   `gorm:"-" json:"live_price,omitempty"`
	LiveChangePercent *float64   `gorm:"-" json:"live_change_percent,omitempty"`
	LiveVolume        *float64   `gorm:"-" json:"live_volume,omitempty"`
	QuoteUpdated      *time.Time `gorm:"-" json:"quote_updated,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name used by Company to `companies`
func (Company) TableName() string {
	return "companies"
}
