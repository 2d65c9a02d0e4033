/**
 * @description
 * Project and ExtractedMetric database models.
 * Projects belong to a Company; metrics carry provenance from the source filing.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

import "time"

// Project represents a mineral project owned by a company
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Ticker      string    `gorm:"column:ticker;index;not null" json:"ticker"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Location    string    `gorm:"column:location" json:"location"`
	Stage       string    `gorm:"column:stage" json:"stage"` // Exploration, Development, Production
	Commodity   string    `gorm:"column:commodity" json:"commodity"`
	MetricCount int       `gorm:"column:metric_count;default:0" json:"metric_count"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Metrics []ExtractedMetric `gorm:"foreignKey:ProjectID" json:"metrics,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// ExtractedMetric is a single figure pulled from a technical filing (e.g. NI 43-101)
type ExtractedMetric struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ProjectID      uint       `gorm:"column:project_id;index;not null" json:"project_id"`
	MetricName     string     `gorm:"column:metric_name;not null" json:"metric_name"`
	MetricValue    float64    `gorm:"column:metric_value" json:"metric_value"`
	MetricUnit     string     `gorm:"column:metric_unit" json:"metric_unit"`
	FilingDate     *time.Time `gorm:"column:filing_date" json:"filing_date"`
	RawTextSnippet string     `gorm:"column:raw_text_snippet" json:"raw_text_snippet"`
}

func (ExtractedMetric) TableName() string {
	return "extracted_metrics"
}
