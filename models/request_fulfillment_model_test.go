package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFulfillmentTransitions(t *testing.T) {
	assert.True(t, FulfillmentCanTransition(FulfillmentStatusSubmitted, FulfillmentStatusAwaitingApproval))
	assert.True(t, FulfillmentCanTransition(FulfillmentStatusSubmitted, FulfillmentStatusRejected))
	assert.True(t, FulfillmentCanTransition(FulfillmentStatusAwaitingApproval, FulfillmentStatusApproved))
	assert.True(t, FulfillmentCanTransition(FulfillmentStatusAwaitingApproval, FulfillmentStatusCommunityReview))
	assert.True(t, FulfillmentCanTransition(FulfillmentStatusCommunityReview, FulfillmentStatusApproved))
	assert.True(t, FulfillmentCanTransition(FulfillmentStatusCommunityReview, FulfillmentStatusRejected))

	// Terminal states never transition.
	assert.False(t, FulfillmentCanTransition(FulfillmentStatusApproved, FulfillmentStatusRejected))
	assert.False(t, FulfillmentCanTransition(FulfillmentStatusRejected, FulfillmentStatusAwaitingApproval))

	// No skipping backwards.
	assert.False(t, FulfillmentCanTransition(FulfillmentStatusCommunityReview, FulfillmentStatusAwaitingApproval))
	assert.False(t, FulfillmentCanTransition(FulfillmentStatusAwaitingApproval, FulfillmentStatusSubmitted))
}

func TestFulfillmentStatusTerminal(t *testing.T) {
	assert.True(t, FulfillmentStatusTerminal(FulfillmentStatusApproved))
	assert.True(t, FulfillmentStatusTerminal(FulfillmentStatusRejected))
	assert.False(t, FulfillmentStatusTerminal(FulfillmentStatusSubmitted))
	assert.False(t, FulfillmentStatusTerminal(FulfillmentStatusAwaitingApproval))
	assert.False(t, FulfillmentStatusTerminal(FulfillmentStatusCommunityReview))
}
