package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/services"
)

var validate = validator.New()

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, services.ErrNotAuthenticated
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, services.ErrNotAuthenticated
	}
	raw, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, services.ErrNotAuthenticated
	}
	return userID, nil
}

// respondServiceError translates the domain error taxonomy into HTTP
// responses with enough detail for user-facing messages.
func respondServiceError(c *fiber.Ctx, err error) error {
	var insufficient *services.InsufficientPointsError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":     "Insufficient points",
			"required":  insufficient.Required,
			"available": insufficient.Available,
		})
	}

	var invalidFile *services.InvalidFileError
	if errors.As(err, &invalidFile) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "File validation failed",
			"violations": invalidFile.Violations,
		})
	}

	var storage *services.StorageError
	if errors.As(err, &storage) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Storage is temporarily unavailable, please retry",
		})
	}

	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	case errors.Is(err, services.ErrNotAuthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, services.ErrAlreadyResolved):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already resolved"})
	case errors.Is(err, services.ErrVoteRateExceeded):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many votes in a short time, slow down"})
	case errors.Is(err, services.ErrDailyUploadLimit):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Daily upload limit reached! You can upload a maximum of 3 files per day."})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
