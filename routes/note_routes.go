package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/handlers"
	"github.com/notewala/gyan_notes/middleware"
)

func NoteRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notes := api.Group("/notes", middleware.Protected())
	notes.Post("", handlers.UploadNote)
	notes.Get("", handlers.ListNotes)
	notes.Post("/search", handlers.SearchNotes)
	notes.Get("/:noteId", handlers.GetNote)
	notes.Post("/:noteId/download", handlers.DownloadNote)
	notes.Post("/:noteId/vote", handlers.VoteOnNote)
	notes.Post("/:noteId/report", handlers.ReportNote)
}
