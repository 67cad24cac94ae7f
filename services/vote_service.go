package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// checkVoteRate is the anti-spam throttle: more than VoteWindowLimit vote
// events inside the sliding window blocks the vote.
func checkVoteRate(tx *gorm.DB, userID uuid.UUID) error {
	cutoff := time.Now().Add(-time.Duration(VoteWindowSeconds()) * time.Second)
	var recent int64
	if err := tx.Model(&models.VoteActivity{}).
		Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Count(&recent).Error; err != nil {
		return err
	}
	if recent >= int64(VoteWindowLimit()) {
		return ErrVoteRateExceeded
	}
	return nil
}

func recordVoteActivity(tx *gorm.DB, userID uuid.UUID, targetType string, targetID uuid.UUID, voteType string) error {
	activity := models.VoteActivity{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		VoteType:   voteType,
	}
	return tx.Create(&activity).Error
}

// VoteOnFulfillment upserts a community-review vote keyed by
// (fulfillment, voter): voting again with a different type updates the
// existing row, never creating a duplicate. Counters are recomputed from the
// vote rows in the same transaction, then the community thresholds are
// re-evaluated.
func VoteOnFulfillment(fulfillmentID, voterID uuid.UUID, voteType string) error {
	if voteType != models.VoteTypeUpvote && voteType != models.VoteTypeDownvote {
		return errors.New("vote_type must be upvote or downvote")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var fulfillment models.RequestFulfillment
		if err := tx.First(&fulfillment, "id = ?", fulfillmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if models.FulfillmentStatusTerminal(fulfillment.Status) {
			return ErrAlreadyResolved
		}

		if err := checkVoteRate(tx, voterID); err != nil {
			return err
		}

		vote := models.FulfillmentVote{
			FulfillmentID: fulfillmentID,
			UserID:        voterID,
			VoteType:      voteType,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fulfillment_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"vote_type": voteType}),
		}).Create(&vote).Error; err != nil {
			return err
		}

		if err := recountFulfillmentVotes(tx, fulfillmentID); err != nil {
			return err
		}
		return recordVoteActivity(tx, voterID, models.VoteTargetFulfillment, fulfillmentID, voteType)
	})
	if err != nil {
		return err
	}

	return CheckCommunityValidation(fulfillmentID)
}

func recountFulfillmentVotes(tx *gorm.DB, fulfillmentID uuid.UUID) error {
	var upvotes, downvotes int64
	if err := tx.Model(&models.FulfillmentVote{}).
		Where("fulfillment_id = ? AND vote_type = ?", fulfillmentID, models.VoteTypeUpvote).
		Count(&upvotes).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.FulfillmentVote{}).
		Where("fulfillment_id = ? AND vote_type = ?", fulfillmentID, models.VoteTypeDownvote).
		Count(&downvotes).Error; err != nil {
		return err
	}
	return tx.Model(&models.RequestFulfillment{}).
		Where("id = ?", fulfillmentID).
		Updates(map[string]interface{}{"upvotes": upvotes, "downvotes": downvotes}).Error
}

// VoteOnNote applies library-note voting with toggle semantics: tapping the
// same vote again removes it, a different vote replaces it. The note's
// counters and trust score are recomputed in the same transaction.
func VoteOnNote(noteID, voterID uuid.UUID, voteType string) error {
	if voteType != models.VoteTypeUpvote && voteType != models.VoteTypeDownvote {
		return errors.New("vote_type must be upvote or downvote")
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		var note models.Note
		if err := tx.First(&note, "id = ?", noteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := checkVoteRate(tx, voterID); err != nil {
			return err
		}

		var existing models.NoteVote
		err := tx.Where("note_id = ? AND user_id = ?", noteID, voterID).First(&existing).Error
		switch {
		case err == nil && existing.VoteType == voteType:
			// Same vote again: remove it.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := recordVoteActivity(tx, voterID, models.VoteTargetNote, noteID, "un"+voteType); err != nil {
				return err
			}
		case err == nil:
			if err := tx.Model(&existing).Update("vote_type", voteType).Error; err != nil {
				return err
			}
			if err := recordVoteActivity(tx, voterID, models.VoteTargetNote, noteID, voteType); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.NoteVote{NoteID: noteID, UserID: voterID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			if err := recordVoteActivity(tx, voterID, models.VoteTargetNote, noteID, voteType); err != nil {
				return err
			}
		default:
			return err
		}

		return recountNoteVotes(tx, noteID)
	})
}

func recountNoteVotes(tx *gorm.DB, noteID uuid.UUID) error {
	var upvotes, downvotes int64
	if err := tx.Model(&models.NoteVote{}).
		Where("note_id = ? AND vote_type = ?", noteID, models.VoteTypeUpvote).
		Count(&upvotes).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.NoteVote{}).
		Where("note_id = ? AND vote_type = ?", noteID, models.VoteTypeDownvote).
		Count(&downvotes).Error; err != nil {
		return err
	}
	return tx.Model(&models.Note{}).
		Where("id = ?", noteID).
		Updates(map[string]interface{}{
			"upvotes":     upvotes,
			"downvotes":   downvotes,
			"trust_score": upvotes - downvotes,
		}).Error
}
