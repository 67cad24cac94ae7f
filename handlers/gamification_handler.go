package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
	"github.com/notewala/gyan_notes/services"
)

type LeaderboardEntry struct {
	FullName        string `json:"full_name"`
	University      string `json:"university,omitempty"`
	GyanPoints      int    `json:"gyan_points"`
	ReputationLevel string `json:"reputation_level"`
}

// GetLeaderboard returns the top ten contributors by Gyan Points.
func GetLeaderboard(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.
		Where("is_active = ?", true).
		Order("gyan_points desc").
		Limit(10).
		Find(&users).Error; err != nil {
		return respondServiceError(c, err)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entry := LeaderboardEntry{
			FullName:        user.FullName,
			GyanPoints:      user.GyanPoints,
			ReputationLevel: services.ReputationLevel(user.GyanPoints),
		}
		if user.University != nil {
			entry.University = *user.University
		}
		entries = append(entries, entry)
	}
	return c.JSON(entries)
}

func GetReputationLevels(c *fiber.Ctx) error {
	return c.JSON([]fiber.Map{
		{"level": services.ReputationNewbie, "min_points": 0},
		{"level": services.ReputationContributor, "min_points": 50},
		{"level": services.ReputationActive, "min_points": 200},
		{"level": services.ReputationTopContributor, "min_points": 500},
		{"level": services.ReputationLegend, "min_points": 1000},
	})
}
