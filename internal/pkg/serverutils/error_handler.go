package serverutils

import (
	"errors"

	"keepnotes-be/internal/service"
	"keepnotes-be/pkg/delta"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates errors bubbling out of handlers into the
// uniform envelope. Domain sentinels map to their HTTP statuses here so
// controllers can simply `return err`.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := statusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}

func statusFor(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	switch {
	case errors.Is(err, delta.ErrMalformedDocument):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNoteNotFound),
		errors.Is(err, service.ErrLabelNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrDuplicateLabel),
		errors.Is(err, service.ErrVaultEnabled),
		errors.Is(err, service.ErrVaultDisabled):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrVaultLocked):
		return fiber.StatusLocked
	case errors.Is(err, service.ErrWrongPassword):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
