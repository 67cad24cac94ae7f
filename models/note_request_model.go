package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryProgramming = "programming"
	CategorySchool      = "school"
	CategoryUniversity  = "university"
)

const (
	RequestStatusOpen      = "open"
	RequestStatusFulfilled = "fulfilled"
	RequestStatusCancelled = "cancelled"
	RequestStatusExpired   = "expired"
)

// NoteRequest is a user's ask for notes on a topic. PointsOffered is escrowed
// from the requester at creation and either paid to the approved fulfiller or
// refunded on cancel/expiry.
type NoteRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index" json:"requester_id"`

	Category    string `gorm:"size:20;not null" json:"category"`
	Level       string `gorm:"size:50;not null" json:"level"`
	Subject     string `gorm:"size:100;not null" json:"subject"`
	Topic       string `gorm:"size:200;not null" json:"topic"`
	Description string `gorm:"type:text" json:"description"`

	PointsOffered int    `gorm:"not null" json:"points_offered"`
	Status        string `gorm:"size:20;not null;default:'open'" json:"status"`

	ExpiresAt   *time.Time `json:"expires_at"`
	FulfilledBy *uuid.UUID `gorm:"type:uuid" json:"fulfilled_by"`
	FulfilledAt *time.Time `json:"fulfilled_at"`

	Requester User `gorm:"foreignkey:RequesterID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *NoteRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
