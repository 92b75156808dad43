package serverutils

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts service errors into JSON envelopes.
// Deadline errors (graphviz render, upstream model calls) map to 408 so the
// client can tell a timeout apart from a generic failure.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			code = fiber.StatusRequestTimeout
		} else if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
