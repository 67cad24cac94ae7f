package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/services"
)

type CreateRequestRequest struct {
	Category      string `json:"category" validate:"required,oneof=programming school university"`
	Level         string `json:"level" validate:"required,max=50"`
	Subject       string `json:"subject" validate:"required,max=100"`
	Topic         string `json:"topic" validate:"required,max=200"`
	Description   string `json:"description" validate:"required,min=10,max=1000"`
	PointsOffered int    `json:"points_offered" validate:"required,min=5,max=100"`
}

func CreateNoteRequest(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := services.CreateNoteRequest(userID, services.CreateRequestInput{
		Category:      req.Category,
		Level:         req.Level,
		Subject:       req.Subject,
		Topic:         req.Topic,
		Description:   req.Description,
		PointsOffered: req.PointsOffered,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func ListOpenRequests(c *fiber.Ctx) error {
	requests, err := services.ListOpenRequests(
		c.Query("category"),
		c.Query("subject"),
		c.Query("search"),
	)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(requests)
}

func ListMyRequests(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	requests, err := services.ListRequestsByUser(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(requests)
}

func CancelNoteRequest(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	if err := services.CancelRequest(requestID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request cancelled and points refunded"})
}
