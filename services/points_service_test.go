package services

import (
	"testing"

	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebitPointsGuardsBalance(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, 8)

	err := DebitPoints(database.DB, user.ID, 5, models.MovementRequestEscrow, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, userBalance(t, user.ID))
	assert.Equal(t, -5, movementSum(t, user.ID))
}

func TestDebitPointsExactBalanceSucceeds(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, 50)

	err := DebitPoints(database.DB, user.ID, 50, models.MovementDownloadCost, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, userBalance(t, user.ID))
}

func TestDebitPointsInsufficientLeavesNothingBehind(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, 8)

	err := DebitPoints(database.DB, user.ID, 10, models.MovementRequestEscrow, nil)
	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 10, insufficient.Required)
	assert.Equal(t, 8, insufficient.Available)

	assert.Equal(t, 8, userBalance(t, user.ID))
	assert.Equal(t, 0, movementSum(t, user.ID))
}

func TestCreditPointsAppendsLedger(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, 0)

	require.NoError(t, CreditPoints(database.DB, user.ID, 10, models.MovementSignupBonus, nil))
	require.NoError(t, CreditPoints(database.DB, user.ID, 20, models.MovementReferralBonus, nil))

	assert.Equal(t, 30, userBalance(t, user.ID))
	assert.Equal(t, 30, movementSum(t, user.ID))
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, 10)

	assert.Error(t, DebitPoints(database.DB, user.ID, 0, models.MovementDownloadCost, nil))
	assert.Error(t, CreditPoints(database.DB, user.ID, -5, models.MovementUploadBonus, nil))
	assert.Equal(t, 10, userBalance(t, user.ID))
}
