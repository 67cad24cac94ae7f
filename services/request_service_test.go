package services

import (
	"errors"
	"testing"
	"time"

	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequestInput(points int) CreateRequestInput {
	return CreateRequestInput{
		Category:      models.CategoryUniversity,
		Level:         "Bachelor",
		Subject:       "Operating Systems",
		Topic:         "Paging and segmentation",
		PointsOffered: points,
	}
}

func TestCreateNoteRequestEscrowsPoints(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 8)

	request, err := CreateNoteRequest(requester.ID, testRequestInput(5))
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusOpen, request.Status)
	assert.NotNil(t, request.ExpiresAt)
	assert.Equal(t, 3, userBalance(t, requester.ID))

	var movement models.PointMovement
	require.NoError(t, database.DB.First(&movement, "user_id = ?", requester.ID).Error)
	assert.Equal(t, models.MovementRequestEscrow, movement.Reason)
	assert.Equal(t, -5, movement.Amount)
}

func TestCreateNoteRequestInsufficientRollsBack(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 4)

	_, err := CreateNoteRequest(requester.ID, testRequestInput(5))
	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)

	var count int64
	database.DB.Model(&models.NoteRequest{}).Count(&count)
	assert.Zero(t, count)
	assert.Equal(t, 4, userBalance(t, requester.ID))
}

func TestCreateNoteRequestSpendsDownToZero(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 10)

	_, err := CreateNoteRequest(requester.ID, testRequestInput(5))
	require.NoError(t, err)
	_, err = CreateNoteRequest(requester.ID, testRequestInput(5))
	require.NoError(t, err)
	assert.Equal(t, 0, userBalance(t, requester.ID))

	_, err = CreateNoteRequest(requester.ID, testRequestInput(5))
	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Available)
}

func TestCreateNoteRequestRejectsOutOfRangeOffer(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 500)

	_, err := CreateNoteRequest(requester.ID, testRequestInput(4))
	assert.Error(t, err)
	_, err = CreateNoteRequest(requester.ID, testRequestInput(101))
	assert.Error(t, err)
	assert.Equal(t, 500, userBalance(t, requester.ID))
}

func TestCancelRequestRefundsOnce(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)

	request, err := CreateNoteRequest(requester.ID, testRequestInput(30))
	require.NoError(t, err)
	assert.Equal(t, 70, userBalance(t, requester.ID))

	require.NoError(t, CancelRequest(request.ID, requester.ID))
	assert.Equal(t, 100, userBalance(t, requester.ID))

	err = CancelRequest(request.ID, requester.ID)
	assert.True(t, errors.Is(err, ErrAlreadyResolved))
	assert.Equal(t, 100, userBalance(t, requester.ID))
}

func TestCancelRequestRequiresOwner(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)
	stranger := createTestUser(t, 100)

	request, err := CreateNoteRequest(requester.ID, testRequestInput(10))
	require.NoError(t, err)

	err = CancelRequest(request.ID, stranger.ID)
	assert.True(t, errors.Is(err, ErrNotAuthorized))

	var reloaded models.NoteRequest
	require.NoError(t, database.DB.First(&reloaded, "id = ?", request.ID).Error)
	assert.Equal(t, models.RequestStatusOpen, reloaded.Status)
}

func TestExpireOpenRequestsDueRefundsEscrow(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 100)

	request, err := CreateNoteRequest(requester.ID, testRequestInput(20))
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, database.DB.Model(&models.NoteRequest{}).
		Where("id = ?", request.ID).
		Update("expires_at", past).Error)

	expired, err := ExpireOpenRequestsDue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	var reloaded models.NoteRequest
	require.NoError(t, database.DB.First(&reloaded, "id = ?", request.ID).Error)
	assert.Equal(t, models.RequestStatusExpired, reloaded.Status)
	assert.Equal(t, 100, userBalance(t, requester.ID))

	// A second sweep finds nothing and refunds nothing.
	expired, err = ExpireOpenRequestsDue(time.Now())
	require.NoError(t, err)
	assert.Zero(t, expired)
	assert.Equal(t, 100, userBalance(t, requester.ID))
}

func TestListOpenRequestsFilters(t *testing.T) {
	setupTestDB(t)
	requester := createTestUser(t, 500)

	_, err := CreateNoteRequest(requester.ID, testRequestInput(10))
	require.NoError(t, err)

	other := testRequestInput(10)
	other.Category = models.CategoryProgramming
	other.Subject = "Go"
	other.Topic = "Channels and goroutines"
	_, err = CreateNoteRequest(requester.ID, other)
	require.NoError(t, err)

	all, err := ListOpenRequests("", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	programming, err := ListOpenRequests(models.CategoryProgramming, "", "")
	require.NoError(t, err)
	require.Len(t, programming, 1)
	assert.Equal(t, "Go", programming[0].Subject)

	searched, err := ListOpenRequests("", "", "PAGING")
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "Operating Systems", searched[0].Subject)
}
