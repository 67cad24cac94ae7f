package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/services"
)

// SubmitFulfillment accepts a multipart PDF for an open request. Validation
// runs before any upload happens, so an oversized or non-PDF file never
// touches storage.
func SubmitFulfillment(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}

	fileType := file.Header.Get("Content-Type")
	fulfillment, err := services.SubmitFulfillment(requestID, userID, fileType, file.Size, func() (string, error) {
		publicID := fmt.Sprintf("fulfillment_%s_%d", requestID, time.Now().Unix())
		return services.UploadFile(file, "gyan_notes_fulfillments", publicID)
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fulfillment)
}

// ListPendingFulfillments returns submissions awaiting the caller's review,
// scoped to requests they opened.
func ListPendingFulfillments(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	fulfillments, err := services.ListPendingFulfillmentsForRequester(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fulfillments)
}

type ReviewFulfillmentRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

func ReviewFulfillment(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	fulfillmentID, err := uuid.Parse(c.Params("fulfillmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid fulfillment id"})
	}

	var req ReviewFulfillmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	fulfillment, err := services.ProcessApproval(fulfillmentID, *req.Approved, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fulfillment)
}

type VoteRequest struct {
	VoteType string `json:"vote_type" validate:"required,oneof=upvote downvote"`
}

func VoteOnFulfillment(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	fulfillmentID, err := uuid.Parse(c.Params("fulfillmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid fulfillment id"})
	}

	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.VoteOnFulfillment(fulfillmentID, userID, req.VoteType); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Vote recorded"})
}
