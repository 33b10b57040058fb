package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
)

func jsonOK(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(fiber.Map{"status": "ok", "data": payload})
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": msg})
}

// fail maps the error taxonomy onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": ve.Reason,
			"field":   ve.Field,
		})
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, apperrors.ErrUnauthorized):
		return jsonError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, apperrors.ErrForbidden):
		return jsonError(c, fiber.StatusForbidden, "not authorized")
	default:
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
}
