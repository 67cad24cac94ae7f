package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notewala/gyan_notes/services"
)

type SearchNotesRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

// SearchNotes answers a free-text question with the most relevant approved
// notes, AI-ranked when the gateway is available.
func SearchNotes(c *fiber.Ctx) error {
	var req SearchNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	notes, err := services.SearchNotes(req.Query)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"results": notes})
}
