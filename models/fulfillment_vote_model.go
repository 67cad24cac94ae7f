package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VoteTypeUpvote   = "upvote"
	VoteTypeDownvote = "downvote"
)

// FulfillmentVote holds one community-review vote. The unique index on
// (fulfillment_id, user_id) makes repeat votes an upsert, never a second row.
type FulfillmentVote struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FulfillmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_fulfillment_voter" json:"fulfillment_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_fulfillment_voter" json:"user_id"`
	VoteType      string    `gorm:"size:10;not null" json:"vote_type"`
	CreatedAt     time.Time `json:"created_at"`
}

func (v *FulfillmentVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
