/**
 * @description
 * Financial statement database model.
 * One row per company per reporting period.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

import "time"

// Financial represents one reporting period of a company's statements
type Financial struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Ticker             string     `gorm:"column:ticker;index;not null" json:"ticker"`
	PeriodEnd          *time.Time `gorm:"column:period_end;index" json:"period_end"`
	PeriodType         string     `gorm:"column:period_type" json:"period_type"` // "quarterly" or "annual"
	Revenue            *float64   `gorm:"column:revenue" json:"revenue"`
	OperatingIncome    *float64   `gorm:"column:operating_income" json:"operating_income"`
	NetIncome          *float64   `gorm:"column:net_income" json:"net_income"`
	FreeCashFlow       *float64   `gorm:"column:free_cash_flow" json:"free_cash_flow"`
	TotalAssets        *float64   `gorm:"column:total_assets" json:"total_assets"`
	TotalLiabilities   *float64   `gorm:"column:total_liabilities" json:"total_liabilities"`
	CashAndEquivalents *float64   `gorm:"column:cash_and_equivalents" json:"cash_and_equivalents"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Financial) TableName() string {
	return "financials"
}
