package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/common/errs"
	"github.com/gaze-network/leb128/internal/usecase"
	"github.com/gaze-network/leb128/pkg/logger"
	"github.com/gaze-network/leb128/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

type decodeCmdOptions struct {
	Format string
	Bound  uint64
	Strict bool
	Server string
}

func NewDecodeCommand() *cobra.Command {
	opts := &decodeCmdOptions{}

	cmd := &cobra.Command{
		Use:   "decode [input]",
		Short: "Decode a sequence of encoded values",
		Long: `Decode a concatenation of LEB128 encoded values and print one value per line.
Input is read from the argument, or from stdin when no argument is given.`,
		Example: "  leb128 decode ac02\n  printf '\\x80\\x01' | leb128 decode --format raw\n  leb128 decode --bound 200 ac02",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decodeHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Format, "format", "f", formatHex, "input format: `hex`, `base64` or `raw`")
	flags.Uint64Var(&opts.Bound, "bound", 0, "reject values greater than this upper bound (default: codec.upper_bound from config, else none)")
	flags.BoolVar(&opts.Strict, "strict", false, "fail when the input ends in the middle of a value")
	addServerFlag(flags, &opts.Server)

	return cmd
}

func decodeHandler(opts *decodeCmdOptions, cmd *cobra.Command, args []string) error {
	if err := validateFormat(opts.Format); err != nil {
		return errors.WithStack(err)
	}

	var upperBound *uint64
	if cmd.Flags().Changed("bound") {
		upperBound = &opts.Bound
	}

	ctx := logger.WithContext(cmd.Context(), slogx.String("command", "decode"))
	uc, err := newCodec(opts.Server)
	if err != nil {
		return errors.WithStack(err)
	}
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	printValue := func(value uint64) error {
		_, err := fmt.Fprintln(out, value)
		return errors.WithStack(err)
	}

	// bytes of a value cut off by the end of the input
	var pending int
	if local, ok := uc.(*usecase.Usecase); ok && opts.Format == formatRaw && len(args) == 0 {
		// raw stdin is decoded as a stream, values are printed as soon as they are complete
		pending, err = local.DecodeStream(ctx, bufio.NewReader(cmd.InOrStdin()), upperBound, printValue)
		if err != nil {
			return errors.WithStack(err)
		}
	} else {
		input, err := readInput(cmd, args, opts.Format)
		if err != nil {
			return errors.WithStack(err)
		}
		data, err := parseInput(opts.Format, input)
		if err != nil {
			return errors.WithStack(err)
		}
		result, err := uc.Decode(ctx, data, upperBound)
		if err != nil {
			return errors.WithStack(err)
		}
		for _, value := range result.Values {
			if err := printValue(value); err != nil {
				return err
			}
		}
		pending = len(result.Remaining)
	}

	if pending > 0 {
		if opts.Strict {
			return errors.Wrapf(errs.Incomplete, "input ends in the middle of a value, %d trailing bytes", pending)
		}
		logger.WarnContext(ctx, "Input ends in the middle of a value, trailing bytes are ignored", slogx.Int("pending", pending))
	}
	return nil
}

// readInput returns the argument, or stdin when there is none.
// Raw input is taken as is, even when empty or made of whitespace bytes.
func readInput(cmd *cobra.Command, args []string, format string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}
	input, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, errors.Wrap(err, "can't read stdin")
	}
	if format != formatRaw && strings.TrimSpace(string(input)) == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "no input, pass it as an argument or on stdin")
	}
	return input, nil
}
