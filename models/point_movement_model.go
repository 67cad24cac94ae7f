package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MovementRequestEscrow    = "request_escrow"
	MovementFulfillmentPaid  = "fulfillment_reward"
	MovementRequestRefund    = "request_refund"
	MovementUploadBonus      = "upload_bonus"
	MovementSignupBonus      = "signup_bonus"
	MovementReferralBonus    = "referral_bonus"
	MovementProfileBonus     = "profile_bonus"
	MovementDownloadCost     = "download_cost"
)

// PointMovement is the append-only ledger behind users.gyan_points. Amount is
// signed: debits are negative, credits positive. The sum of a user's
// movements always equals their current balance.
type PointMovement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount      int        `gorm:"not null" json:"amount"`
	Reason      string     `gorm:"size:30;not null" json:"reason"`
	ReferenceID *uuid.UUID `gorm:"type:uuid" json:"reference_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (m *PointMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
