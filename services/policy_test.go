package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownloadCostSteps(t *testing.T) {
	assert.Equal(t, 50, DownloadCost(0))
	assert.Equal(t, 50, DownloadCost(9))
	assert.Equal(t, 55, DownloadCost(10))
	assert.Equal(t, 60, DownloadCost(25))
	assert.Equal(t, 100, DownloadCost(100))

	// Negative trust never discounts below base.
	assert.Equal(t, 50, DownloadCost(-40))
}

func TestReputationLevels(t *testing.T) {
	assert.Equal(t, ReputationNewbie, ReputationLevel(0))
	assert.Equal(t, ReputationNewbie, ReputationLevel(49))
	assert.Equal(t, ReputationContributor, ReputationLevel(50))
	assert.Equal(t, ReputationActive, ReputationLevel(200))
	assert.Equal(t, ReputationTopContributor, ReputationLevel(500))
	assert.Equal(t, ReputationTopContributor, ReputationLevel(999))
	assert.Equal(t, ReputationLegend, ReputationLevel(1000))
}
