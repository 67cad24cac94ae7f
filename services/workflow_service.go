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
	"github.com/notewala/gyan_notes/websocket"
	"gorm.io/gorm"
)

// SubmitFulfillment runs the structural checks and records the submission.
// A file that fails validation is stored directly in rejected state with the
// full violation list and the request stays open; a passing file is uploaded
// via the supplied upload func and lands in awaiting_approval with its
// auto-review deadline set.
func SubmitFulfillment(requestID, uploaderID uuid.UUID, fileType string, fileSize int64, upload func() (string, error)) (*models.RequestFulfillment, error) {
	var request models.NoteRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Status != models.RequestStatusOpen {
		return nil, ErrAlreadyResolved
	}

	violations := ValidateFulfillmentFile(fileType, fileSize)
	if len(violations) > 0 {
		failed := false
		fulfillment := models.RequestFulfillment{
			RequestID:        requestID,
			UploaderID:       uploaderID,
			FileType:         fileType,
			FileSize:         fileSize,
			Status:           models.FulfillmentStatusRejected,
			ValidationPassed: &failed,
			ValidationErrors: violations,
		}
		if err := database.DB.Create(&fulfillment).Error; err != nil {
			return nil, err
		}
		return &fulfillment, &InvalidFileError{Violations: violations}
	}

	fileURL, err := upload()
	if err != nil {
		return nil, &StorageError{Op: "upload", Err: err}
	}

	passed := true
	autoReviewAt := time.Now().Add(time.Duration(AutoReviewHours()) * time.Hour)
	fulfillment := models.RequestFulfillment{
		RequestID:        requestID,
		UploaderID:       uploaderID,
		FileURL:          fileURL,
		FileType:         fileType,
		FileSize:         fileSize,
		Status:           models.FulfillmentStatusAwaitingApproval,
		ValidationPassed: &passed,
		AutoReviewAt:     &autoReviewAt,
	}
	if err := database.DB.Create(&fulfillment).Error; err != nil {
		return nil, err
	}

	go notifyFulfillmentSubmitted(&request, &fulfillment)
	return &fulfillment, nil
}

// ProcessApproval is the requester's decision on a pending fulfillment.
// Approval settles the request: close it, pay the uploader the escrowed
// points and invalidate competing submissions, all in one transaction.
// Rejection leaves the request open for other fulfillers.
func ProcessApproval(fulfillmentID uuid.UUID, approved bool, reviewerID uuid.UUID) (*models.RequestFulfillment, error) {
	var fulfillment models.RequestFulfillment
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Request").First(&fulfillment, "id = ?", fulfillmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if fulfillment.Request.RequesterID != reviewerID {
			return ErrNotAuthorized
		}
		if models.FulfillmentStatusTerminal(fulfillment.Status) {
			return ErrAlreadyResolved
		}

		if approved {
			return approveFulfillment(tx, &fulfillment)
		}
		return rejectFulfillment(tx, &fulfillment)
	})
	if err != nil {
		return nil, err
	}

	go notifyReviewOutcome(&fulfillment)
	return &fulfillment, nil
}

// CheckCommunityValidation recomputes a community-review fulfillment's net
// vote count and settles it once a threshold is crossed. In-between counts
// are a no-op.
func CheckCommunityValidation(fulfillmentID uuid.UUID) error {
	var fulfillment models.RequestFulfillment
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Request").First(&fulfillment, "id = ?", fulfillmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if fulfillment.Status != models.FulfillmentStatusCommunityReview {
			return nil
		}

		net := fulfillment.Upvotes - fulfillment.Downvotes
		switch {
		case net >= ApproveNetVotes():
			return approveFulfillment(tx, &fulfillment)
		case net <= -RejectNetVotes():
			return rejectFulfillment(tx, &fulfillment)
		default:
			return nil
		}
	})
	if err != nil {
		return err
	}

	if models.FulfillmentStatusTerminal(fulfillment.Status) {
		go notifyReviewOutcome(&fulfillment)
	}
	return nil
}

// RunAutoReviewDue applies the deadline policy: awaiting_approval past its
// deadline escalates to community_review with a fresh deadline; a
// community_review still undecided at its deadline is rejected by default.
func RunAutoReviewDue(now time.Time) (int, error) {
	var due []models.RequestFulfillment
	err := database.DB.
		Where("status IN ? AND auto_review_at IS NOT NULL AND auto_review_at <= ?",
			[]string{models.FulfillmentStatusAwaitingApproval, models.FulfillmentStatusCommunityReview}, now).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	processed := 0
	for i := range due {
		fulfillment := due[i]
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Preload("Request").First(&fulfillment, "id = ?", fulfillment.ID).Error; err != nil {
				return err
			}
			switch fulfillment.Status {
			case models.FulfillmentStatusAwaitingApproval:
				return escalateToCommunityReview(tx, &fulfillment, now)
			case models.FulfillmentStatusCommunityReview:
				net := fulfillment.Upvotes - fulfillment.Downvotes
				if net >= ApproveNetVotes() {
					return approveFulfillment(tx, &fulfillment)
				}
				return rejectFulfillment(tx, &fulfillment)
			default:
				return nil
			}
		})
		if err != nil {
			log.Printf("🔥 Auto-review failed for fulfillment %s: %v", fulfillment.ID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

func escalateToCommunityReview(tx *gorm.DB, fulfillment *models.RequestFulfillment, now time.Time) error {
	if !models.FulfillmentCanTransition(fulfillment.Status, models.FulfillmentStatusCommunityReview) {
		return ErrAlreadyResolved
	}
	nextDeadline := now.Add(time.Duration(AutoReviewHours()) * time.Hour)
	fulfillment.Status = models.FulfillmentStatusCommunityReview
	fulfillment.AutoReviewAt = &nextDeadline
	return tx.Model(&models.RequestFulfillment{}).
		Where("id = ?", fulfillment.ID).
		Updates(map[string]interface{}{
			"status":         models.FulfillmentStatusCommunityReview,
			"auto_review_at": nextDeadline,
		}).Error
}

// approveFulfillment settles the request around a compare-and-set on
// Request.status: only a transition from open wins, so a second approval in
// a race fails closed with ErrAlreadyResolved and nothing is credited twice.
func approveFulfillment(tx *gorm.DB, fulfillment *models.RequestFulfillment) error {
	if !models.FulfillmentCanTransition(fulfillment.Status, models.FulfillmentStatusApproved) {
		return ErrAlreadyResolved
	}

	now := time.Now()
	result := tx.Model(&models.NoteRequest{}).
		Where("id = ? AND status = ?", fulfillment.RequestID, models.RequestStatusOpen).
		Updates(map[string]interface{}{
			"status":       models.RequestStatusFulfilled,
			"fulfilled_by": fulfillment.UploaderID,
			"fulfilled_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyResolved
	}

	fulfillment.Status = models.FulfillmentStatusApproved
	fulfillment.ReviewedAt = &now
	if err := tx.Model(&models.RequestFulfillment{}).
		Where("id = ?", fulfillment.ID).
		Updates(map[string]interface{}{
			"status":      models.FulfillmentStatusApproved,
			"reviewed_at": now,
		}).Error; err != nil {
		return err
	}

	if err := CreditPoints(tx, fulfillment.UploaderID, fulfillment.Request.PointsOffered,
		models.MovementFulfillmentPaid, &fulfillment.RequestID); err != nil {
		return err
	}

	// Competing submissions lose once a winner settles.
	return tx.Model(&models.RequestFulfillment{}).
		Where("request_id = ? AND id <> ? AND status IN ?", fulfillment.RequestID, fulfillment.ID,
			[]string{models.FulfillmentStatusSubmitted, models.FulfillmentStatusAwaitingApproval, models.FulfillmentStatusCommunityReview}).
		Updates(map[string]interface{}{
			"status":      models.FulfillmentStatusRejected,
			"reviewed_at": now,
		}).Error
}

func rejectFulfillment(tx *gorm.DB, fulfillment *models.RequestFulfillment) error {
	if !models.FulfillmentCanTransition(fulfillment.Status, models.FulfillmentStatusRejected) {
		return ErrAlreadyResolved
	}
	now := time.Now()
	fulfillment.Status = models.FulfillmentStatusRejected
	fulfillment.ReviewedAt = &now
	return tx.Model(&models.RequestFulfillment{}).
		Where("id = ?", fulfillment.ID).
		Updates(map[string]interface{}{
			"status":      models.FulfillmentStatusRejected,
			"reviewed_at": now,
		}).Error
}

// ListPendingFulfillmentsForRequester returns fulfillments awaiting the
// requester's attention (their own requests only).
func ListPendingFulfillmentsForRequester(requesterID uuid.UUID) ([]models.RequestFulfillment, error) {
	var fulfillments []models.RequestFulfillment
	err := database.DB.
		Preload("Request").
		Preload("Uploader").
		Joins("JOIN note_requests ON note_requests.id = request_fulfillments.request_id").
		Where("note_requests.requester_id = ? AND request_fulfillments.status IN ?",
			requesterID,
			[]string{models.FulfillmentStatusAwaitingApproval, models.FulfillmentStatusCommunityReview}).
		Find(&fulfillments).Error
	return fulfillments, err
}

func notifyFulfillmentSubmitted(request *models.NoteRequest, fulfillment *models.RequestFulfillment) {
	websocket.NotifyUser(request.RequesterID, "fulfillment_submitted", map[string]interface{}{
		"request_id":     request.ID,
		"fulfillment_id": fulfillment.ID,
		"subject":        request.Subject,
	})

	var requester models.User
	if err := database.DB.First(&requester, "id = ?", request.RequesterID).Error; err != nil {
		return
	}
	notifications.SendEmail(
		requester.FullName,
		requester.Email,
		"Someone fulfilled your note request!",
		fmt.Sprintf("<h1>New Submission</h1><p>Your request for <b>%s</b> notes has a new submission. Review it in My Requests.</p>", request.Subject),
	)
}

func notifyReviewOutcome(fulfillment *models.RequestFulfillment) {
	websocket.NotifyUser(fulfillment.UploaderID, "fulfillment_reviewed", map[string]interface{}{
		"fulfillment_id": fulfillment.ID,
		"request_id":     fulfillment.RequestID,
		"status":         fulfillment.Status,
	})

	if fulfillment.Status != models.FulfillmentStatusApproved {
		return
	}
	var uploader models.User
	if err := database.DB.First(&uploader, "id = ?", fulfillment.UploaderID).Error; err != nil {
		return
	}
	notifications.SendEmail(
		uploader.FullName,
		uploader.Email,
		"Your fulfillment was approved!",
		fmt.Sprintf("<h1>Congratulations!</h1><p>Your submission was approved and <b>%d Gyan Points</b> were added to your balance.</p>", fulfillment.Request.PointsOffered),
	)
}
