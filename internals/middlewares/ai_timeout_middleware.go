package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/configs"
)

// AITimeout rebuilds the request's user context with a deadline sized for
// outbound AI calls. The global request guard caps UserContext at a few
// seconds, which would cancel any provider completion before AI_TIMEOUT_SEC
// is reached; AI routes get their own window instead. Derives from the raw
// request context, not the already-capped user context.
func AITimeout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		timeoutSec := configs.AITimeoutSec
		if timeoutSec <= 0 {
			timeoutSec = 30
		}
		window := time.Duration(timeoutSec)*time.Second + 5*time.Second
		ctx, cancel := context.WithTimeout(c.Context(), window)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
