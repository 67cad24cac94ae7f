package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/handlers"
	"github.com/notewala/gyan_notes/middleware"
)

func GamificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/leaderboard", middleware.Protected(), handlers.GetLeaderboard)
	api.Get("/reputation-levels", handlers.GetReputationLevels)
}
