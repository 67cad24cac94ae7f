package services

import (
	"errors"
	"testing"

	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNoteInput() CreateNoteInput {
	return CreateNoteInput{
		Category: models.CategoryProgramming,
		Level:    "Intermediate",
		Subject:  "Go",
		Topic:    "Error handling",
		Tags:     []string{"go", "errors"},
		FileURL:  "https://files.example.com/go-errors.pdf",
		FileType: "application/pdf",
	}
}

func TestCreateNotePaysUploadBonus(t *testing.T) {
	setupTestDB(t)
	uploader := createTestUser(t, 0)

	note, err := CreateNote(uploader.ID, testNoteInput())
	require.NoError(t, err)

	assert.Equal(t, models.NoteStatusApproved, note.Status)
	assert.Equal(t, UploadBonusPoints, userBalance(t, uploader.ID))

	count, err := DailyUploadCount(uploader.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateNoteEnforcesDailyCap(t *testing.T) {
	setupTestDB(t)
	uploader := createTestUser(t, 0)

	for i := 0; i < DailyUploadLimit; i++ {
		_, err := CreateNote(uploader.ID, testNoteInput())
		require.NoError(t, err)
	}

	_, err := CreateNote(uploader.ID, testNoteInput())
	assert.True(t, errors.Is(err, ErrDailyUploadLimit))

	var count int64
	database.DB.Model(&models.Note{}).Count(&count)
	assert.Equal(t, int64(DailyUploadLimit), count)
	assert.Equal(t, DailyUploadLimit*UploadBonusPoints, userBalance(t, uploader.ID))
}

func TestDownloadNoteChargesTrustBasedCost(t *testing.T) {
	setupTestDB(t)
	uploader := createTestUser(t, 0)
	downloader := createTestUser(t, 200)

	note, err := CreateNote(uploader.ID, testNoteInput())
	require.NoError(t, err)

	require.NoError(t, database.DB.Model(&models.Note{}).
		Where("id = ?", note.ID).
		Update("trust_score", 25).Error)

	fileURL, cost, err := DownloadNote(note.ID, downloader.ID)
	require.NoError(t, err)
	assert.Equal(t, note.FileURL, fileURL)
	assert.Equal(t, 60, cost)
	assert.Equal(t, 140, userBalance(t, downloader.ID))
}

func TestDownloadNoteInsufficientPoints(t *testing.T) {
	setupTestDB(t)
	uploader := createTestUser(t, 0)
	downloader := createTestUser(t, 10)

	note, err := CreateNote(uploader.ID, testNoteInput())
	require.NoError(t, err)

	_, cost, err := DownloadNote(note.ID, downloader.ID)
	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 50, cost)
	assert.Equal(t, 10, userBalance(t, downloader.ID))
}
