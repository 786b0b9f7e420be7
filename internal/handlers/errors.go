package handlers

import (
	"errors"

	"inventory/internal/apperrors"
	"inventory/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateKey), errors.Is(err, apperrors.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the JSON error body for err. message is the summary used
// for unexpected failures, whose details are logged rather than returned.
func respondError(c *fiber.Ctx, err error, message string) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", middleware.RequestID(c)).Msg(message)
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"error":   "internal server error",
		})
	}

	body := fiber.Map{
		"message": err.Error(),
		"error":   fiber.ErrBadRequest.Message,
	}
	switch status {
	case fiber.StatusNotFound:
		body["error"] = fiber.ErrNotFound.Message
	case fiber.StatusConflict:
		body["error"] = fiber.ErrConflict.Message
	}
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		body["message"] = "Validation failed"
		body["errors"] = verr.Fields()
	}
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
