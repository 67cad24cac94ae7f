package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"github.com/notewala/gyan_notes/services"
	"gorm.io/gorm"
)

type ProfileUpdateRequest struct {
	FullName   *string `json:"full_name" validate:"omitempty,max=100"`
	University *string `json:"university" validate:"omitempty,max=200"`
	Course     *string `json:"course" validate:"omitempty,max=100"`
}

func GetMyProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return respondServiceError(c, services.ErrNotFound)
	}

	return c.JSON(fiber.Map{
		"id":               user.ID,
		"full_name":        user.FullName,
		"email":            user.Email,
		"university":       user.University,
		"course":           user.Course,
		"gyan_points":      user.GyanPoints,
		"reputation_level": services.ReputationLevel(user.GyanPoints),
		"referral_code":    user.ReferralCode,
		"created_at":       user.CreatedAt,
	})
}

// UpdateMyProfile applies the optional fields and pays the one-time
// profile-completion bonus when university and course are both filled for
// the first time.
func UpdateMyProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return services.ErrNotFound
		}

		if req.FullName != nil && *req.FullName != "" {
			user.FullName = *req.FullName
		}
		if req.University != nil {
			user.University = req.University
		}
		if req.Course != nil {
			user.Course = req.Course
		}

		complete := user.University != nil && *user.University != "" &&
			user.Course != nil && *user.Course != ""
		awardBonus := complete && !user.ProfileBonusAwarded
		if awardBonus {
			user.ProfileBonusAwarded = true
		}

		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if awardBonus {
			return services.CreditPoints(tx, userID, services.ProfileBonusPoints, models.MovementProfileBonus, nil)
		}
		return nil
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"full_name":  user.FullName,
		"university": user.University,
		"course":     user.Course,
	})
}

// GetMyPointHistory exposes the append-only ledger behind the balance.
func GetMyPointHistory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var movements []models.PointMovement
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(100).
		Find(&movements).Error; err != nil {
		return respondServiceError(c, err)
	}

	balance, err := services.PointBalance(userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"balance":   balance,
		"movements": movements,
	})
}

func ListMyCertificates(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var certificates []models.Certificate
	database.DB.Where("user_id = ?", userID).Find(&certificates)
	return c.JSON(certificates)
}
