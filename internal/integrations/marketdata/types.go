/**
 * @description
 * Response types for the market-data vendor API and their mapping to DB models.
 *
 * @dependencies
 * - internal/models
 */

package marketdata

import (
	"strings"
	"time"

	"github.com/resource-capital/backend/internal/models"
)

// CompanyRecord is one listing as returned by the vendor
type CompanyRecord struct {
	Ticker            string   `json:"ticker"`
	Name              string   `json:"name"`
	Exchange          string   `json:"exchange"`
	Commodity         string   `json:"commodity"`
	Currency          string   `json:"currency"`
	Description       string   `json:"description"`
	Website           string   `json:"website"`
	Price             *float64 `json:"price"`
	DayChangePercent  *float64 `json:"day_change_percent"`
	MarketCap         *float64 `json:"market_cap"`
	Volume            *float64 `json:"volume"`
	Week52High        *float64 `json:"week_52_high"`
	Week52Low         *float64 `json:"week_52_low"`
	SharesOutstanding *float64 `json:"shares_outstanding"`
	Delisted          bool     `json:"delisted"`
}

// ToDBModel converts a vendor listing into the companies table shape
func (r CompanyRecord) ToDBModel() *models.Company {
	now := time.Now()
	return &models.Company{
		Ticker:            strings.ToUpper(strings.TrimSpace(r.Ticker)),
		Name:              r.Name,
		Exchange:          r.Exchange,
		Commodity:         r.Commodity,
		Currency:          defaultString(r.Currency, "CAD"),
		Description:       r.Description,
		Website:           r.Website,
		CurrentPrice:      r.Price,
		DayChangePercent:  r.DayChangePercent,
		MarketCap:         r.MarketCap,
		Volume:            r.Volume,
		Week52High:        r.Week52High,
		Week52Low:         r.Week52Low,
		SharesOutstanding: r.SharesOutstanding,
		Active:            !r.Delisted,
		LastUpdated:       &now,
	}
}

// InsiderRecord is one insider filing as returned by the vendor
type InsiderRecord struct {
	FilingID        string     `json:"filing_id"`
	Ticker          string     `json:"ticker"`
	InsiderName     string     `json:"insider_name"`
	InsiderTitle    string     `json:"insider_title"`
	TransactionType string     `json:"transaction_type"`
	Shares          float64    `json:"shares"`
	Value           float64    `json:"value"`
	TransactionDate *time.Time `json:"transaction_date"`
}

// ToDBModel converts a vendor filing into the insider_transactions table shape
func (r InsiderRecord) ToDBModel() *models.InsiderTransaction {
	return &models.InsiderTransaction{
		FilingID:        r.FilingID,
		Ticker:          strings.ToUpper(strings.TrimSpace(r.Ticker)),
		InsiderName:     r.InsiderName,
		InsiderTitle:    r.InsiderTitle,
		TransactionType: r.TransactionType,
		Shares:          r.Shares,
		Value:           r.Value,
		TransactionDate: r.TransactionDate,
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
