package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VoteTargetNote        = "note"
	VoteTargetFulfillment = "fulfillment"
)

// VoteActivity logs every vote and unvote so the spam check can count a
// user's events inside a sliding window.
type VoteActivity struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TargetType string    `gorm:"size:20;not null" json:"target_type"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null" json:"target_id"`
	VoteType   string    `gorm:"size:10;not null" json:"vote_type"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (a *VoteActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
