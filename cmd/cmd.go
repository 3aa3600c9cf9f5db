package cmd

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/internal/config"
	"github.com/gaze-network/leb128/pkg/logger"
	"github.com/gaze-network/leb128/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var cmds = []func() *cobra.Command{
	NewVersionCommand,
	NewEncodeCommand,
	NewDecodeCommand,
	NewServeCommand,
}

// NewRootCommand returns the `leb128` command with every sub-command registered.
func NewRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "leb128",
		Short:         "Encode and decode LEB128 unsigned integers",
		Long:          `LEB128 (Little Endian Base 128) codec for unsigned 64-bit integers, as a CLI and an HTTP service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			conf := config.Parse(configFile)
			if err := logger.Init(conf.Logger); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			logger.Debug("Loaded configuration", slog.Any("config", conf))
			return nil
		},
	}

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")
	flags.Bool("debug", false, "enable debug logging")

	// Bind flags to configuration
	config.BindPFlag("logger.debug", flags.Lookup("debug"))

	for _, newCmd := range cmds {
		cmd.AddCommand(newCmd())
	}
	return cmd
}

func Execute(ctx context.Context) {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		logger.FatalContext(ctx, "Failed to execute command", slogx.Error(err))
	}
}
