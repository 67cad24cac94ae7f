package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NoteStatusPending     = "pending"
	NoteStatusApproved    = "approved"
	NoteStatusQuarantined = "quarantined"
)

type Note struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UploaderID uuid.UUID `gorm:"type:uuid;not null;index" json:"uploader_id"`

	Category string   `gorm:"size:20;not null" json:"category"`
	Level    string   `gorm:"size:50;not null" json:"level"`
	Subject  string   `gorm:"size:100;not null" json:"subject"`
	Topic    string   `gorm:"size:200;not null" json:"topic"`
	Tags     []string `gorm:"serializer:json" json:"tags"`

	FileURL  string `gorm:"type:text;not null" json:"file_url"`
	FileType string `gorm:"size:100;not null" json:"file_type"`

	Status     string `gorm:"size:20;not null;default:'approved'" json:"status"`
	Upvotes    int    `gorm:"not null;default:0" json:"upvotes"`
	Downvotes  int    `gorm:"not null;default:0" json:"downvotes"`
	TrustScore int    `gorm:"not null;default:0" json:"trust_score"`

	Uploader User `gorm:"foreignkey:UploaderID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
