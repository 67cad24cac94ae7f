package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteVote struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	NoteID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_voter" json:"note_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_voter" json:"user_id"`
	VoteType  string    `gorm:"size:10;not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *NoteVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
