package middlewares

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The global request guard caps UserContext at a few seconds; AI routes must
// get a window wide enough for a slow provider completion.
func TestAITimeout_WidensRequestDeadline(t *testing.T) {
	app := fiber.New()

	// short outer guard, as on the global request path
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	var wide, narrow time.Duration
	app.Get("/wide", AITimeout(), func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		require.True(t, ok)
		wide = time.Until(deadline)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/narrow", func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		require.True(t, ok)
		narrow = time.Until(deadline)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/wide", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/narrow", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// default AI window is 30s plus margin; well beyond the request guard
	assert.Greater(t, wide, 10*time.Second)
	assert.LessOrEqual(t, narrow, 5*time.Second)
}
