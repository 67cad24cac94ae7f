package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/handlers"
	"github.com/notewala/gyan_notes/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/reports", handlers.AdminListReports)
	admin.Post("/notes/:noteId/quarantine", handlers.AdminQuarantineNote)
	admin.Post("/notes/:noteId/restore", handlers.AdminRestoreNote)
	admin.Get("/users", handlers.AdminListUsers)
	admin.Post("/users/:userId/deactivate", handlers.AdminDeactivateUser)
}
