package api

import (
	"log/slog"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/internal/api/httphandler"
	"github.com/gaze-network/leb128/internal/config"
	"github.com/gaze-network/leb128/internal/usecase"
	"github.com/gaze-network/leb128/pkg/errorhandler"
	"github.com/gaze-network/leb128/pkg/logger"
	"github.com/gaze-network/leb128/pkg/logger/slogx"
	"github.com/gaze-network/leb128/pkg/middleware/requestcontext"
	"github.com/gaze-network/leb128/pkg/middleware/requestlogger"
	"github.com/gaze-network/leb128/pkg/stacktrace"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const AppName = "LEB128 Codec"

func NewHTTPHandler(usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(usecase)
}

// NewHTTPServer builds the fiber app with the standard middlewares and mounts the codec routes.
func NewHTTPServer(conf config.HTTPServerConfig, usecase *usecase.Usecase) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               AppName,
		BodyLimit:             conf.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorhandler.NewHTTPErrorHandler(),
	})
	app.
		Use(favicon.New()).
		Use(cors.New()).
		Use(requestid.New()).
		Use(requestcontext.New(
			requestcontext.WithRequestId(),
		)).
		Use(requestlogger.New(conf.Logger)).
		Use(fiberrecover.New(fiberrecover.Config{
			EnableStackTrace: true,
			StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
				logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", errors.Newf("panic: %v", e),
					slog.Any("stacktrace", stacktrace.Capture(2).Lines()),
				)
			},
		})).
		Use(compress.New(compress.Config{
			Level: compress.LevelDefault,
		}))

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return errors.WithStack(c.SendStatus(http.StatusOK))
	})

	if err := NewHTTPHandler(usecase).Mount(app); err != nil {
		return nil, errors.Wrap(err, "can't mount codec API")
	}
	logger.Debug("Mounted HTTP handler", slogx.String("app", AppName))

	return app, nil
}
