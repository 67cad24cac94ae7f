package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"github.com/notewala/gyan_notes/services"
)

func GetReferralStats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	stats, err := services.GetReferralStats(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

func ListMyReferrals(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var referrals []models.Referral
	if err := database.DB.
		Where("referrer_id = ?", userID).
		Order("created_at desc").
		Find(&referrals).Error; err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(referrals)
}
