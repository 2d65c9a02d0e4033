/**
 * @description
 * Insider transaction database model and the derived sentiment summary.
 * Maps to the 'insider_transactions' table.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

import "time"

// InsiderTransaction represents a single reported insider trade
type InsiderTransaction struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	FilingID        string     `gorm:"column:filing_id;uniqueIndex" json:"filing_id"` // vendor's filing identifier
	Ticker          string     `gorm:"column:ticker;index;not null" json:"ticker"`
	InsiderName     string     `gorm:"column:insider_name" json:"insider_name"`
	InsiderTitle    string     `gorm:"column:insider_title" json:"insider_title"`
	TransactionType string     `gorm:"column:transaction_type;not null" json:"transaction_type"` // e.g. "Buy", "Sell", "Acquisition", "Disposition"
	Shares          float64    `gorm:"column:shares" json:"shares"`
	Value           float64    `gorm:"column:value" json:"value"`
	TransactionDate *time.Time `gorm:"column:transaction_date;index" json:"transaction_date"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InsiderTransaction) TableName() string {
	return "insider_transactions"
}

// InsiderSentiment is the aggregated buy/sell summary over a lookback window.
// Computed by the insider service, never persisted.
type InsiderSentiment struct {
	Ticker     string  `json:"ticker"`
	WindowDays int     `json:"window_days"`
	BuyCount   int     `json:"buy_count"`
	SellCount  int     `json:"sell_count"`
	BuyShares  float64 `json:"buy_shares"`
	SellShares float64 `json:"sell_shares"`
	BuyValue   float64 `json:"buy_value"`
	SellValue  float64 `json:"sell_value"`
	NetShares  float64 `json:"net_shares"`
	Sentiment  string  `json:"sentiment"` // "bullish", "bearish" or "neutral"
}
