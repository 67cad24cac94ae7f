package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB swaps the global connection for an in-memory sqlite database
// with the full schema migrated. Each test gets a fresh database.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.NoteVote{},
		&models.NoteRequest{},
		&models.RequestFulfillment{},
		&models.FulfillmentVote{},
		&models.VoteActivity{},
		&models.PointMovement{},
		&models.Referral{},
		&models.Report{},
		&models.DailyUpload{},
		&models.Certificate{},
	))

	database.DB = db
}

func createTestUser(t *testing.T, points int) *models.User {
	t.Helper()

	code := uuid.New().String()[:8]
	user := models.User{
		FullName:     "Test User",
		Email:        uuid.New().String() + "@example.com",
		Password:     "hashed",
		GyanPoints:   points,
		ReferralCode: &code,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return &user
}

func userBalance(t *testing.T, userID uuid.UUID) int {
	t.Helper()

	var user models.User
	require.NoError(t, database.DB.First(&user, "id = ?", userID).Error)
	return user.GyanPoints
}

// movementSum checks the ledger invariant: the sum of a user's movements
// must equal their balance column.
func movementSum(t *testing.T, userID uuid.UUID) int {
	t.Helper()

	var movements []models.PointMovement
	require.NoError(t, database.DB.Where("user_id = ?", userID).Find(&movements).Error)
	sum := 0
	for _, m := range movements {
		sum += m.Amount
	}
	return sum
}
