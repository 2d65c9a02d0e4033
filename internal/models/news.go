/**
 * @description
 * News article database model.
 * Maps to the 'news' table. Classification fields (commodity/region/catalyst tags)
 * are derived by the news service heuristics at ingest time.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

import "time"

// NewsArticle represents an aggregated news item, optionally linked to a ticker
type NewsArticle struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Ticker      string      `gorm:"column:ticker;index" json:"ticker"` // optional, "" when sector-wide
	Title       string      `gorm:"column:title;not null" json:"title"`
	Description string      `gorm:"column:description" json:"description"` // may contain HTML
	Source      string      `gorm:"column:source" json:"source"`
	URL         string      `gorm:"column:url;uniqueIndex" json:"url"`
	ImageURL    string      `gorm:"column:image_url" json:"image_url"`
	PublishedAt *time.Time  `gorm:"column:published_at;index" json:"published_at"`
	Commodity   string      `gorm:"column:commodity" json:"commodity"`
	Region      string      `gorm:"column:region" json:"region"`
	Catalyst    string      `gorm:"column:catalyst" json:"catalyst"`
	Tags        StringArray `gorm:"column:tags;type:text[]" json:"tags"`

	// Presentation fields derived on read, never persisted
	Breaking     bool `gorm:"-" json:"breaking"`
	ReadTimeMins int  `gorm:"-" json:"read_time_mins"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (NewsArticle) TableName() string {
	return "news"
}
