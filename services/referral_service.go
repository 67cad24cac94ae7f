package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"github.com/notewala/gyan_notes/notifications"
	"gorm.io/gorm"
)

// CreateReferralIfEligible records a pending referral for a new signup. The
// referrer's monthly cap is enforced here; an over-cap signup still succeeds,
// it just earns the referrer nothing.
func CreateReferralIfEligible(tx *gorm.DB, referrer *models.User, referredUserID uuid.UUID) error {
	month := time.Now().Format("2006-01")

	var monthly int64
	if err := tx.Model(&models.Referral{}).
		Where("referrer_id = ? AND referral_month = ?", referrer.ID, month).
		Count(&monthly).Error; err != nil {
		return err
	}
	if monthly >= int64(MonthlyReferralLimit()) {
		log.Printf("Referral cap reached for user %s this month, skipping", referrer.ID)
		return nil
	}

	referral := models.Referral{
		ReferrerID:     referrer.ID,
		ReferredUserID: referredUserID,
		Status:         models.ReferralStatusPending,
		ReferralMonth:  month,
	}
	return tx.Create(&referral).Error
}

// CompleteReferralIfApplicable pays the referral bonus once the referred
// user makes their first upload. Runs after note creation; safe to call
// repeatedly, later calls find no pending referral.
func CompleteReferralIfApplicable(uploaderID uuid.UUID) {
	var referral models.Referral
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Referrer").
			Where("referred_user_id = ? AND status = ?", uploaderID, models.ReferralStatusPending).
			First(&referral).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		now := time.Now()
		result := tx.Model(&models.Referral{}).
			Where("id = ? AND status = ?", referral.ID, models.ReferralStatusPending).
			Updates(map[string]interface{}{
				"status":         models.ReferralStatusCompleted,
				"points_awarded": ReferralBonusPoints,
				"completed_at":   now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := CreditPoints(tx, referral.ReferrerID, ReferralBonusPoints, models.MovementReferralBonus, &referral.ID); err != nil {
			return err
		}

		go notifications.SendEmail(
			referral.Referrer.FullName,
			referral.Referrer.Email,
			"You've earned a referral bonus!",
			fmt.Sprintf("<h1>Congratulations!</h1><p>Someone you referred uploaded their first notes. <b>%d Gyan Points</b> were added to your balance.</p>", ReferralBonusPoints),
		)
		return nil
	})
	if err != nil {
		log.Printf("🔥 Error processing referral for user %s: %v", uploaderID, err)
	}
}

type ReferralStats struct {
	TotalReferrals    int64 `json:"total_referrals"`
	MonthlyReferrals  int64 `json:"monthly_referrals"`
	PendingReferrals  int64 `json:"pending_referrals"`
	TotalPointsEarned int64 `json:"total_points_earned"`
}

func GetReferralStats(userID uuid.UUID) (*ReferralStats, error) {
	var stats ReferralStats
	month := time.Now().Format("2006-01")

	if err := database.DB.Model(&models.Referral{}).
		Where("referrer_id = ?", userID).
		Count(&stats.TotalReferrals).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.Referral{}).
		Where("referrer_id = ? AND referral_month = ?", userID, month).
		Count(&stats.MonthlyReferrals).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.Referral{}).
		Where("referrer_id = ? AND status = ?", userID, models.ReferralStatusPending).
		Count(&stats.PendingReferrals).Error; err != nil {
		return nil, err
	}

	var earned *int64
	if err := database.DB.Model(&models.Referral{}).
		Select("SUM(points_awarded)").
		Where("referrer_id = ? AND status = ?", userID, models.ReferralStatusCompleted).
		Scan(&earned).Error; err != nil {
		return nil, err
	}
	if earned != nil {
		stats.TotalPointsEarned = *earned
	}
	return &stats, nil
}
