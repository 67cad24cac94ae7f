package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"github.com/notewala/gyan_notes/services"
)

// UploadNote takes a multipart form with the note file plus its metadata
// fields. Tags arrive as a comma separated string.
func UploadNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}

	fileType := file.Header.Get("Content-Type")
	if violations := services.ValidateNoteFile(fileType, file.Size); len(violations) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "File validation failed",
			"violations": violations,
		})
	}

	category := c.FormValue("category")
	subject := c.FormValue("subject")
	topic := c.FormValue("topic")
	if category == "" || subject == "" || topic == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "category, subject and topic are required"})
	}

	var tags []string
	if raw := c.FormValue("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	if len(tags) > 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A note can carry at most 10 tags"})
	}

	publicID := fmt.Sprintf("note_%s_%d", userID, time.Now().Unix())
	fileURL, err := services.UploadFile(file, "gyan_notes_library", publicID)
	if err != nil {
		return respondServiceError(c, err)
	}

	note, err := services.CreateNote(userID, services.CreateNoteInput{
		Category: category,
		Level:    c.FormValue("level"),
		Subject:  subject,
		Topic:    topic,
		Tags:     tags,
		FileURL:  fileURL,
		FileType: fileType,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func ListNotes(c *fiber.Ctx) error {
	query := database.DB.
		Where("status = ?", models.NoteStatusApproved).
		Order("trust_score desc, created_at desc")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(subject) LIKE LOWER(?) OR LOWER(topic) LIKE LOWER(?)", pattern, pattern)
	}

	var notes []models.Note
	if err := query.Limit(100).Find(&notes).Error; err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notes)
}

func GetNote(c *fiber.Ctx) error {
	noteID := c.Params("noteId")

	var note models.Note
	if err := database.DB.Preload("Uploader").First(&note, "id = ?", noteID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	}

	return c.JSON(fiber.Map{
		"note":          note,
		"uploader_name": note.Uploader.FullName,
		"download_cost": services.DownloadCost(note.TrustScore),
	})
}

// DownloadNote charges the caller the trust-score based cost and returns the
// file URL on success.
func DownloadNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	noteID, err := uuid.Parse(c.Params("noteId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid note id"})
	}

	fileURL, cost, err := services.DownloadNote(noteID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"file_url":       fileURL,
		"points_charged": cost,
	})
}

func VoteOnNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	noteID, err := uuid.Parse(c.Params("noteId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid note id"})
	}

	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.VoteOnNote(noteID, userID, req.VoteType); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Vote recorded"})
}

type ReportNoteRequest struct {
	Reason string `json:"reason" validate:"required,min=10,max=1000"`
}

func ReportNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	noteID, err := uuid.Parse(c.Params("noteId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid note id"})
	}

	var req ReportNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var note models.Note
	if err := database.DB.First(&note, "id = ?", noteID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	}

	report := models.Report{
		NoteID:     noteID,
		ReporterID: userID,
		Reason:     req.Reason,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit report"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Report submitted, thank you"})
}
