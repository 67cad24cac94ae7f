package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyUpload tracks per-day upload counts for the daily cap.
type DailyUpload struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_upload_date" json:"user_id"`
	UploadDate  string    `gorm:"size:10;not null;uniqueIndex:idx_user_upload_date" json:"upload_date"`
	UploadCount int       `gorm:"not null;default:0" json:"upload_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (d *DailyUpload) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
