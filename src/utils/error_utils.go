package utils

import (
	"errors"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/logger"
	"pulsepad-backend/src/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleServiceError maps a service error to its HTTP status. Unknown errors
// are logged and reported as a generic 500.
func HandleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrInvalidID), errors.Is(err, apperr.ErrInvalidInput):
		return HandleError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return HandleError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return HandleError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		return HandleError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return HandleError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrRateLimited):
		return HandleError(c, fiber.StatusTooManyRequests, err.Error())
	}

	logger.Log.Error("❌ Unexpected error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return HandleError(c, fiber.StatusInternalServerError, "Internal server error")
}
