// Package requestcontext copies per-request information from fiber into the
// request's context.Context, so handlers and the logger can use it.
package requestcontext

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gaze-network/leb128/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type Option func(ctx context.Context, c *fiber.Ctx) (context.Context, error)

// New applies the options in order and stores the resulting context as the user context.
func New(opts ...Option) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var err error
		ctx := c.UserContext()
		for i, opt := range opts {
			ctx, err = opt(ctx, c)
			if err != nil {
				logger.ErrorContext(ctx, "failed to extract request context", err,
					slog.String("event", "requestcontext/error"),
					slog.Int("optionIndex", i),
				)
				return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
			}
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}
