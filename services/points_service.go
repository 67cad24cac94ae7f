package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"gorm.io/gorm"
)

// DebitPoints atomically takes amount from a user's balance and appends a
// negative PointMovement. The UPDATE is guarded so a committed balance can
// never go negative: zero rows affected means the user cannot afford it and
// nothing is mutated.
func DebitPoints(tx *gorm.DB, userID uuid.UUID, amount int, reason string, referenceID *uuid.UUID) error {
	if amount <= 0 {
		return errors.New("debit amount must be positive")
	}

	result := tx.Model(&models.User{}).
		Where("id = ? AND gyan_points >= ?", userID, amount).
		Update("gyan_points", gorm.Expr("gyan_points - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		available, err := balanceIn(tx, userID)
		if err != nil {
			return err
		}
		return &InsufficientPointsError{Required: amount, Available: available}
	}

	movement := models.PointMovement{
		UserID:      userID,
		Amount:      -amount,
		Reason:      reason,
		ReferenceID: referenceID,
	}
	return tx.Create(&movement).Error
}

// CreditPoints adds amount to a user's balance and appends a positive
// PointMovement. Credits always succeed for an existing user.
func CreditPoints(tx *gorm.DB, userID uuid.UUID, amount int, reason string, referenceID *uuid.UUID) error {
	if amount <= 0 {
		return errors.New("credit amount must be positive")
	}

	result := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("gyan_points", gorm.Expr("gyan_points + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	movement := models.PointMovement{
		UserID:      userID,
		Amount:      amount,
		Reason:      reason,
		ReferenceID: referenceID,
	}
	return tx.Create(&movement).Error
}

// PointBalance reads the current balance, used to pre-check affordability
// for user-facing shortfall messages.
func PointBalance(userID uuid.UUID) (int, error) {
	return balanceIn(database.DB, userID)
}

func balanceIn(tx *gorm.DB, userID uuid.UUID) (int, error) {
	var user models.User
	if err := tx.Select("gyan_points").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return user.GyanPoints, nil
}
