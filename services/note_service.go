package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"gorm.io/gorm"
)

// DailyUploadCount returns how many notes the user has uploaded today.
func DailyUploadCount(userID uuid.UUID) (int, error) {
	today := time.Now().Format("2006-01-02")
	var record models.DailyUpload
	err := database.DB.Where("user_id = ? AND upload_date = ?", userID, today).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return record.UploadCount, nil
}

func incrementDailyUpload(tx *gorm.DB, userID uuid.UUID) error {
	today := time.Now().Format("2006-01-02")
	var record models.DailyUpload
	err := tx.Where("user_id = ? AND upload_date = ?", userID, today).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.DailyUpload{UserID: userID, UploadDate: today, UploadCount: 1}
		return tx.Create(&record).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&record).Update("upload_count", gorm.Expr("upload_count + 1")).Error
}

type CreateNoteInput struct {
	Category string
	Level    string
	Subject  string
	Topic    string
	Tags     []string
	FileURL  string
	FileType string
}

// CreateNote persists an uploaded note, bumps the daily counter and pays the
// upload bonus through the ledger. The first upload also completes any
// pending referral for the uploader.
func CreateNote(uploaderID uuid.UUID, input CreateNoteInput) (*models.Note, error) {
	count, err := DailyUploadCount(uploaderID)
	if err != nil {
		return nil, err
	}
	if count >= DailyUploadLimit {
		return nil, ErrDailyUploadLimit
	}

	note := models.Note{
		UploaderID: uploaderID,
		Category:   input.Category,
		Level:      input.Level,
		Subject:    input.Subject,
		Topic:      input.Topic,
		Tags:       input.Tags,
		FileURL:    input.FileURL,
		FileType:   input.FileType,
		Status:     models.NoteStatusApproved,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		if err := incrementDailyUpload(tx, uploaderID); err != nil {
			return err
		}
		return CreditPoints(tx, uploaderID, UploadBonusPoints, models.MovementUploadBonus, &note.ID)
	})
	if err != nil {
		return nil, err
	}

	go CompleteReferralIfApplicable(uploaderID)
	go CheckReputationCertificate(uploaderID)
	return &note, nil
}

// DownloadNote charges the trust-score based cost and hands back the file
// URL. The debit carries the shortfall when the user cannot afford it.
func DownloadNote(noteID, userID uuid.UUID) (string, int, error) {
	var note models.Note
	if err := database.DB.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, ErrNotFound
		}
		return "", 0, err
	}

	cost := DownloadCost(note.TrustScore)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return DebitPoints(tx, userID, cost, models.MovementDownloadCost, &note.ID)
	})
	if err != nil {
		return "", cost, err
	}
	return note.FileURL, cost, nil
}
