/**
 * @description
 * Report database model for user-uploaded PDFs (technical reports, presentations).
 * Maps to the 'reports' table.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/google/uuid
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report represents metadata for an uploaded PDF
type Report struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Ticker    string    `gorm:"column:ticker;index" json:"ticker"` // optional company link
	Title     string    `gorm:"column:title;not null" json:"title"`
	FilePath  string    `gorm:"column:file_path;not null" json:"file_path"`
	FileSize  int64     `gorm:"column:file_size" json:"file_size"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}

// BeforeCreate ensures UUID is generated if not present
func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
