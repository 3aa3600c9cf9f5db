package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/internal/api"
	"github.com/gaze-network/leb128/internal/config"
	"github.com/gaze-network/leb128/internal/usecase"
	"github.com/gaze-network/leb128/pkg/automaxprocs"
	"github.com/gaze-network/leb128/pkg/logger"
	"github.com/gaze-network/leb128/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 30 * time.Second
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the LEB128 HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return serveHandler(cmd, args)
		},
	}

	// Add local flags
	flags := cmd.Flags()
	flags.Int("port", config.DefaultHTTPPort, "HTTP server port")

	// Bind flags to configuration
	config.BindPFlag("http_server.port", flags.Lookup("port"))

	return cmd
}

func serveHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, slogx.String("command", "serve"))

	injector := do.New()
	do.ProvideValue(injector, conf)
	do.Provide(injector, func(i do.Injector) (*usecase.Usecase, error) {
		conf := do.MustInvoke[config.Config](i)
		return usecase.New(conf.Codec), nil
	})
	do.Provide(injector, func(i do.Injector) (*fiber.App, error) {
		conf := do.MustInvoke[config.Config](i)
		app, err := api.NewHTTPServer(conf.HTTPServer, do.MustInvoke[*usecase.Usecase](i))
		if err != nil {
			return nil, errors.Wrap(err, "can't create HTTP server")
		}
		return app, nil
	})

	httpServer, err := do.Invoke[*fiber.App](injector)
	if err != nil {
		return errors.WithStack(err)
	}

	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			return errors.Wrap(err, "error during running HTTP server")
		}
		return nil
	})
	eg.Go(func() error {
		// Wait for interrupt signal, or the server stopping on its own
		<-ectx.Done()
		logger.InfoContext(ctx, "Shutting down HTTP server...")

		// Force shutdown if timeout exceeded or got signal again
		done := make(chan struct{})
		defer close(done)
		go func() {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			select {
			case <-done:
			case <-ctx.Done():
				logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
			case <-time.After(shutdownTimeout):
				logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
			}
		}()

		if err := injector.Shutdown(); err != nil {
			return errors.Wrap(err, "failed while gracefully shutting down")
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(ctx, "HTTP server stopped")
	return nil
}
