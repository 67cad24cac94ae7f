package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/handlers"
	"github.com/notewala/gyan_notes/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	me := api.Group("/me", middleware.Protected())
	me.Get("", handlers.GetMyProfile)
	me.Patch("", handlers.UpdateMyProfile)
	me.Get("/points", handlers.GetMyPointHistory)
	me.Get("/certificates", handlers.ListMyCertificates)
}
