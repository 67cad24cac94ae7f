package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FulfillmentStatusSubmitted        = "submitted"
	FulfillmentStatusAwaitingApproval = "awaiting_approval"
	FulfillmentStatusCommunityReview  = "community_review"
	FulfillmentStatusApproved         = "approved"
	FulfillmentStatusRejected         = "rejected"
)

// fulfillmentTransitions is the single source of truth for which status
// changes are legal. Approved and rejected are terminal.
var fulfillmentTransitions = map[string][]string{
	FulfillmentStatusSubmitted: {
		FulfillmentStatusRejected,
		FulfillmentStatusAwaitingApproval,
		FulfillmentStatusCommunityReview,
	},
	FulfillmentStatusAwaitingApproval: {
		FulfillmentStatusApproved,
		FulfillmentStatusRejected,
		FulfillmentStatusCommunityReview,
	},
	FulfillmentStatusCommunityReview: {
		FulfillmentStatusApproved,
		FulfillmentStatusRejected,
	},
}

func FulfillmentCanTransition(from, to string) bool {
	for _, next := range fulfillmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func FulfillmentStatusTerminal(status string) bool {
	return status == FulfillmentStatusApproved || status == FulfillmentStatusRejected
}

type RequestFulfillment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RequestID  uuid.UUID `gorm:"type:uuid;not null;index" json:"request_id"`
	UploaderID uuid.UUID `gorm:"type:uuid;not null;index" json:"uploader_id"`

	FileURL  string `gorm:"type:text" json:"file_url"`
	FileType string `gorm:"size:100;not null" json:"file_type"`
	FileSize int64  `gorm:"not null" json:"file_size"`

	Status           string   `gorm:"size:20;not null;default:'submitted'" json:"status"`
	ValidationPassed *bool    `json:"validation_passed"`
	ValidationErrors []string `gorm:"serializer:json" json:"validation_errors"`

	Upvotes   int `gorm:"not null;default:0" json:"upvotes"`
	Downvotes int `gorm:"not null;default:0" json:"downvotes"`

	// AutoReviewAt is the deadline after which the sweep forces a
	// disposition: awaiting_approval escalates to community_review,
	// community_review rejects by default.
	AutoReviewAt *time.Time `json:"auto_review_at"`
	ReviewedAt   *time.Time `json:"reviewed_at"`

	Request  NoteRequest `gorm:"foreignkey:RequestID" json:"-"`
	Uploader User        `gorm:"foreignkey:UploaderID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *RequestFulfillment) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
