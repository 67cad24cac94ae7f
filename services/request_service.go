package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"gorm.io/gorm"
)

type CreateRequestInput struct {
	Category      string
	Level         string
	Subject       string
	Topic         string
	Description   string
	PointsOffered int
}

// CreateNoteRequest escrows the offered points and opens the request in one
// transaction. A failed debit leaves nothing behind.
func CreateNoteRequest(requesterID uuid.UUID, input CreateRequestInput) (*models.NoteRequest, error) {
	if input.PointsOffered < 5 || input.PointsOffered > 100 {
		return nil, fmt.Errorf("points offered must be between 5 and 100")
	}

	expiresAt := time.Now().Add(time.Duration(RequestTTLDays()) * 24 * time.Hour)
	request := models.NoteRequest{
		RequesterID:   requesterID,
		Category:      input.Category,
		Level:         input.Level,
		Subject:       input.Subject,
		Topic:         input.Topic,
		Description:   input.Description,
		PointsOffered: input.PointsOffered,
		Status:        models.RequestStatusOpen,
		ExpiresAt:     &expiresAt,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		return DebitPoints(tx, requesterID, input.PointsOffered, models.MovementRequestEscrow, &request.ID)
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListOpenRequests returns open requests newest first, with optional
// category/subject filters and a case-insensitive substring search over
// subject and topic.
func ListOpenRequests(category, subject, search string) ([]models.NoteRequest, error) {
	query := database.DB.
		Preload("Requester").
		Where("status = ?", models.RequestStatusOpen).
		Order("created_at desc")

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(subject) LIKE LOWER(?) OR LOWER(topic) LIKE LOWER(?)", pattern, pattern)
	}

	var requests []models.NoteRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListRequestsByUser returns all of a requester's requests, newest first.
func ListRequestsByUser(requesterID uuid.UUID) ([]models.NoteRequest, error) {
	var requests []models.NoteRequest
	err := database.DB.
		Where("requester_id = ?", requesterID).
		Order("created_at desc").
		Find(&requests).Error
	return requests, err
}

// CancelRequest lets the requester withdraw an open request and reclaim the
// escrow. The open→cancelled compare-and-set guarantees the refund fires at
// most once, even under a concurrent approval.
func CancelRequest(requestID, requesterID uuid.UUID) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var request models.NoteRequest
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if request.RequesterID != requesterID {
			return ErrNotAuthorized
		}
		return closeAndRefund(tx, &request, models.RequestStatusCancelled)
	})
}

// ExpireOpenRequestsDue sweeps open requests past their deadline, expiring
// each and refunding its escrow in its own transaction.
func ExpireOpenRequestsDue(now time.Time) (int, error) {
	var due []models.NoteRequest
	err := database.DB.
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", models.RequestStatusOpen, now).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range due {
		request := due[i]
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			return closeAndRefund(tx, &request, models.RequestStatusExpired)
		})
		if err != nil {
			if errors.Is(err, ErrAlreadyResolved) {
				continue
			}
			log.Printf("🔥 Failed to expire request %s: %v", request.ID, err)
			continue
		}
		expired++
	}
	return expired, nil
}

// closeAndRefund transitions an open request to cancelled/expired and
// returns the escrowed points to the requester. The status guard on the
// UPDATE makes the refund single-shot.
func closeAndRefund(tx *gorm.DB, request *models.NoteRequest, status string) error {
	result := tx.Model(&models.NoteRequest{}).
		Where("id = ? AND status = ?", request.ID, models.RequestStatusOpen).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyResolved
	}
	return CreditPoints(tx, request.RequesterID, request.PointsOffered, models.MovementRequestRefund, &request.ID)
}
