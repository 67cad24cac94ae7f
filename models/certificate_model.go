package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate records a generated reputation certificate PDF.
type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Level          string    `gorm:"size:30;not null" json:"level"`
	CertificateURL string    `gorm:"type:text;not null" json:"certificate_url"`
	AwardedAt      time.Time `gorm:"not null" json:"awarded_at"`

	User User `gorm:"foreignkey:UserID" json:"-"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
