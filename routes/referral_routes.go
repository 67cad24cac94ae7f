package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/handlers"
	"github.com/notewala/gyan_notes/middleware"
)

func ReferralRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	referrals := api.Group("/referrals", middleware.Protected())
	referrals.Get("/stats", handlers.GetReferralStats)
	referrals.Get("", handlers.ListMyReferrals)
}
