package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFulfillmentFile(t *testing.T) {
	assert.Empty(t, ValidateFulfillmentFile("application/pdf", 500*1024))
	assert.Empty(t, ValidateFulfillmentFile("application/pdf", 200*1024))
	assert.Empty(t, ValidateFulfillmentFile("application/pdf", 10*1024*1024))

	assert.Len(t, ValidateFulfillmentFile("image/png", 500*1024), 1)
	assert.Len(t, ValidateFulfillmentFile("application/pdf", 100*1024), 1)
	assert.Len(t, ValidateFulfillmentFile("application/pdf", 11*1024*1024), 1)

	// Every violated constraint is reported, not just the first.
	assert.Len(t, ValidateFulfillmentFile("text/plain", 10), 2)
}

func TestValidateNoteFile(t *testing.T) {
	assert.Empty(t, ValidateNoteFile("application/pdf", 1024))
	assert.Empty(t, ValidateNoteFile("image/jpeg", 1024))
	assert.Empty(t, ValidateNoteFile("image/webp", 1024))

	assert.Len(t, ValidateNoteFile("video/mp4", 1024), 1)
	assert.Len(t, ValidateNoteFile("application/pdf", 11*1024*1024), 1)
	assert.Len(t, ValidateNoteFile("video/mp4", 11*1024*1024), 2)
}
