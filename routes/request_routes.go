package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/handlers"
	"github.com/notewala/gyan_notes/middleware"
)

func RequestRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	requests := api.Group("/requests", middleware.Protected())
	requests.Post("", handlers.CreateNoteRequest)
	requests.Get("", handlers.ListOpenRequests)
	requests.Get("/mine", handlers.ListMyRequests)
	requests.Delete("/:requestId", handlers.CancelNoteRequest)
	requests.Post("/:requestId/fulfillments", handlers.SubmitFulfillment)

	fulfillments := api.Group("/fulfillments", middleware.Protected())
	fulfillments.Get("/pending", handlers.ListPendingFulfillments)
	fulfillments.Post("/:fulfillmentId/review", handlers.ReviewFulfillment)
	fulfillments.Post("/:fulfillmentId/vote", handlers.VoteOnFulfillment)
}
