package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
)

func AdminListReports(c *fiber.Ctx) error {
	var reports []models.Report
	if err := database.DB.
		Preload("Note").
		Order("created_at desc").
		Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reports"})
	}
	return c.JSON(reports)
}

// AdminQuarantineNote pulls a reported note out of the public library.
func AdminQuarantineNote(c *fiber.Ctx) error {
	noteID := c.Params("noteId")

	result := database.DB.Model(&models.Note{}).
		Where("id = ?", noteID).
		Update("status", models.NoteStatusQuarantined)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to quarantine note"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	}
	return c.JSON(fiber.Map{"message": "Note quarantined"})
}

func AdminRestoreNote(c *fiber.Ctx) error {
	noteID := c.Params("noteId")

	result := database.DB.Model(&models.Note{}).
		Where("id = ?", noteID).
		Update("status", models.NoteStatusApproved)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to restore note"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	}
	return c.JSON(fiber.Map{"message": "Note restored"})
}

func AdminListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.
		Select("id", "full_name", "email", "role", "gyan_points", "is_active", "created_at").
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

func AdminDeactivateUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	result := database.DB.Model(&models.User{}).
		Where("id = ? AND role <> ?", userID, "admin").
		Update("is_active", false)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate user"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User deactivated"})
}
