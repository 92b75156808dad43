package serverutils

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerMiddlewareStatusMapping(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/timeout", func(c *fiber.Ctx) error {
		return fmt.Errorf("graphviz render timed out after 15s: %w", context.DeadlineExceeded)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "project not found")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	tests := []struct {
		path string
		want int
	}{
		{"/timeout", fiber.StatusRequestTimeout},
		{"/missing", fiber.StatusNotFound},
		{"/boom", fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, resp.StatusCode, tt.path)
	}
}
