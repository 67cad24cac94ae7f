package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Report struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	NoteID     uuid.UUID `gorm:"type:uuid;not null;index" json:"note_id"`
	ReporterID uuid.UUID `gorm:"type:uuid;not null" json:"reporter_id"`
	Reason     string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`

	Note Note `gorm:"foreignkey:NoteID" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
