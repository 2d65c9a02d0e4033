/**
 * @description
 * User, saved screener query and watchlist database models.
 * Users are keyed by the hosted auth provider's subject claim.
 *
 * @dependencies
 * - gorm.io/gorm
 * - gorm.io/datatypes
 * - github.com/google/uuid
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a registered user in the system
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthID      string    `gorm:"column:auth_id;uniqueIndex;not null" json:"auth_id"` // Supabase auth subject
	Email       string    `json:"email"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`
	Currency    string    `gorm:"column:currency;default:CAD" json:"currency"`
	DefaultView string    `gorm:"column:default_view;default:terminal" json:"default_view"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by User to `users`
func (User) TableName() string {
	return "users"
}

// BeforeCreate ensures UUID is generated if not present (though DB usually handles this)
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// SavedScreenerQuery persists a user's screener filter state server-side
type SavedScreenerQuery struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Filters   datatypes.JSON `gorm:"column:filters;type:jsonb" json:"filters"`
	SortBy    string         `gorm:"column:sort_by" json:"sort_by"`
	SortDesc  bool           `gorm:"column:sort_desc" json:"sort_desc"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SavedScreenerQuery) TableName() string {
	return "saved_screener_queries"
}

func (q *SavedScreenerQuery) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}

// WatchlistEntry is a user's starred ticker
type WatchlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Ticker    string    `gorm:"column:ticker;not null" json:"ticker"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist_entries"
}

// WatchlistItem is a watchlist entry enriched with quote fields for display
type WatchlistItem struct {
	WatchlistEntry
	Name             string   `json:"name"`
	Exchange         string   `json:"exchange"`
	Commodity        string   `json:"commodity"`
	CurrentPrice     *float64 `json:"current_price"`
	DayChangePercent *float64 `json:"day_change_percent"`
	MarketCap        *float64 `json:"market_cap"`
}
