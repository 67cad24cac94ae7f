package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPDFSize = 500 * 1024

func stubUpload() (string, error) {
	return "https://files.example.com/notes.pdf", nil
}

func openTestRequest(t *testing.T, requester *models.User, points int) *models.NoteRequest {
	t.Helper()

	request, err := CreateNoteRequest(requester.ID, testRequestInput(points))
	require.NoError(t, err)
	return request
}

func TestSubmitFulfillmentValidFileAwaitsApproval(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	uploader := createTestUser(t, 0)
	request := openTestRequest(t, requester, 20)

	fulfillment, err := SubmitFulfillment(request.ID, uploader.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)

	assert.Equal(t, models.FulfillmentStatusAwaitingApproval, fulfillment.Status)
	assert.NotNil(t, fulfillment.AutoReviewAt)
	require.NotNil(t, fulfillment.ValidationPassed)
	assert.True(t, *fulfillment.ValidationPassed)
	assert.Equal(t, "https://files.example.com/notes.pdf", fulfillment.FileURL)
}

func TestSubmitFulfillmentInvalidFileNeverUploads(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	uploader := createTestUser(t, 0)
	request := openTestRequest(t, requester, 20)

	uploaded := false
	fulfillment, err := SubmitFulfillment(request.ID, uploader.ID, "image/png", 100, func() (string, error) {
		uploaded = true
		return "", nil
	})

	var invalid *InvalidFileError
	require.ErrorAs(t, err, &invalid)
	assert.False(t, uploaded)
	// Wrong type and too small are both reported.
	assert.Len(t, invalid.Violations, 2)

	require.NotNil(t, fulfillment)
	assert.Equal(t, models.FulfillmentStatusRejected, fulfillment.Status)
	require.NotNil(t, fulfillment.ValidationPassed)
	assert.False(t, *fulfillment.ValidationPassed)

	var reloaded models.NoteRequest
	require.NoError(t, database.DB.First(&reloaded, "id = ?", request.ID).Error)
	assert.Equal(t, models.RequestStatusOpen, reloaded.Status)
}

func TestSubmitFulfillmentClosedRequest(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	uploader := createTestUser(t, 0)
	request := openTestRequest(t, requester, 20)
	require.NoError(t, CancelRequest(request.ID, requester.ID))

	_, err := SubmitFulfillment(request.ID, uploader.ID, "application/pdf", validPDFSize, stubUpload)
	assert.True(t, errors.Is(err, ErrAlreadyResolved))

	_, err = SubmitFulfillment(uuid.New(), uploader.ID, "application/pdf", validPDFSize, stubUpload)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProcessApprovalSettlesRequest(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	uploader := createTestUser(t, 0)
	request := openTestRequest(t, requester, 20)

	fulfillment, err := SubmitFulfillment(request.ID, uploader.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)

	reviewed, err := ProcessApproval(fulfillment.ID, true, requester.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FulfillmentStatusApproved, reviewed.Status)
	assert.NotNil(t, reviewed.ReviewedAt)

	var reloaded models.NoteRequest
	require.NoError(t, database.DB.First(&reloaded, "id = ?", request.ID).Error)
	assert.Equal(t, models.RequestStatusFulfilled, reloaded.Status)
	require.NotNil(t, reloaded.FulfilledBy)
	assert.Equal(t, uploader.ID, *reloaded.FulfilledBy)

	assert.Equal(t, 20, userBalance(t, uploader.ID))
	assert.Equal(t, 80, userBalance(t, requester.ID))
}

func TestProcessApprovalIsIdempotent(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	uploader := createTestUser(t, 0)
	request := openTestRequest(t, requester, 20)

	fulfillment, err := SubmitFulfillment(request.ID, uploader.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)

	_, err = ProcessApproval(fulfillment.ID, true, requester.ID)
	require.NoError(t, err)

	_, err = ProcessApproval(fulfillment.ID, true, requester.ID)
	assert.True(t, errors.Is(err, ErrAlreadyResolved))

	// The uploader was paid exactly once.
	assert.Equal(t, 20, userBalance(t, uploader.ID))
	assert.Equal(t, 20, movementSum(t, uploader.ID))
}

func TestProcessApprovalRequiresRequester(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	uploader := createTestUser(t, 0)
	stranger := createTestUser(t, 0)
	request := openTestRequest(t, requester, 20)

	fulfillment, err := SubmitFulfillment(request.ID, uploader.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)

	_, err = ProcessApproval(fulfillment.ID, true, stranger.ID)
	assert.True(t, errors.Is(err, ErrNotAuthorized))
	assert.Equal(t, 0, userBalance(t, uploader.ID))
}

func TestProcessApprovalRejectionKeepsRequestOpen(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	uploader := createTestUser(t, 0)
	request := openTestRequest(t, requester, 20)

	fulfillment, err := SubmitFulfillment(request.ID, uploader.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)

	reviewed, err := ProcessApproval(fulfillment.ID, false, requester.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FulfillmentStatusRejected, reviewed.Status)

	var reloaded models.NoteRequest
	require.NoError(t, database.DB.First(&reloaded, "id = ?", request.ID).Error)
	assert.Equal(t, models.RequestStatusOpen, reloaded.Status)
	assert.Equal(t, 0, userBalance(t, uploader.ID))
}

func TestApprovalRejectsCompetingSubmissions(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	winner := createTestUser(t, 0)
	loser := createTestUser(t, 0)
	request := openTestRequest(t, requester, 20)

	winning, err := SubmitFulfillment(request.ID, winner.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)
	losing, err := SubmitFulfillment(request.ID, loser.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)

	_, err = ProcessApproval(winning.ID, true, requester.ID)
	require.NoError(t, err)

	var reloaded models.RequestFulfillment
	require.NoError(t, database.DB.First(&reloaded, "id = ?", losing.ID).Error)
	assert.Equal(t, models.FulfillmentStatusRejected, reloaded.Status)
	assert.Equal(t, 0, userBalance(t, loser.ID))
	assert.Equal(t, 20, userBalance(t, winner.ID))
}

func TestAutoReviewEscalatesThenRejectsByDefault(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	uploader := createTestUser(t, 0)
	request := openTestRequest(t, requester, 20)

	fulfillment, err := SubmitFulfillment(request.ID, uploader.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, database.DB.Model(&models.RequestFulfillment{}).
		Where("id = ?", fulfillment.ID).
		Update("auto_review_at", past).Error)

	processed, err := RunAutoReviewDue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	var reloaded models.RequestFulfillment
	require.NoError(t, database.DB.First(&reloaded, "id = ?", fulfillment.ID).Error)
	assert.Equal(t, models.FulfillmentStatusCommunityReview, reloaded.Status)
	require.NotNil(t, reloaded.AutoReviewAt)
	assert.True(t, reloaded.AutoReviewAt.After(time.Now()))

	// Second deadline passes with no votes: rejected by default.
	require.NoError(t, database.DB.Model(&models.RequestFulfillment{}).
		Where("id = ?", fulfillment.ID).
		Update("auto_review_at", past).Error)

	processed, err = RunAutoReviewDue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	require.NoError(t, database.DB.First(&reloaded, "id = ?", fulfillment.ID).Error)
	assert.Equal(t, models.FulfillmentStatusRejected, reloaded.Status)
	assert.Equal(t, 0, userBalance(t, uploader.ID))
}

func TestAutoReviewApprovesWithEnoughVotes(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	uploader := createTestUser(t, 0)
	request := openTestRequest(t, requester, 20)

	fulfillment, err := SubmitFulfillment(request.ID, uploader.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, database.DB.Model(&models.RequestFulfillment{}).
		Where("id = ?", fulfillment.ID).
		Updates(map[string]interface{}{
			"status":         models.FulfillmentStatusCommunityReview,
			"auto_review_at": past,
			"upvotes":        4,
			"downvotes":      1,
		}).Error)

	_, err = RunAutoReviewDue(time.Now())
	require.NoError(t, err)

	var reloaded models.RequestFulfillment
	require.NoError(t, database.DB.First(&reloaded, "id = ?", fulfillment.ID).Error)
	assert.Equal(t, models.FulfillmentStatusApproved, reloaded.Status)
	assert.Equal(t, 20, userBalance(t, uploader.ID))
}

func TestListPendingFulfillmentsScopedToRequester(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	other := createTestUser(t, 100)
	uploader := createTestUser(t, 0)

	mine := openTestRequest(t, requester, 10)
	theirs := openTestRequest(t, other, 10)

	_, err := SubmitFulfillment(mine.ID, uploader.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)
	_, err = SubmitFulfillment(theirs.ID, uploader.ID, "application/pdf", validPDFSize, stubUpload)
	require.NoError(t, err)

	pending, err := ListPendingFulfillmentsForRequester(requester.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, mine.ID, pending[0].RequestID)
}
