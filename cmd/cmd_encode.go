package cmd

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/common/errs"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type encodeCmdOptions struct {
	Format   string
	Separate bool
	Server   string
}

func NewEncodeCommand() *cobra.Command {
	opts := &encodeCmdOptions{}

	cmd := &cobra.Command{
		Use:     "encode <value>...",
		Short:   "Encode unsigned decimal integers",
		Example: "  leb128 encode 0 127 300\n  leb128 encode --separate --format base64 624485",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return encodeHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Format, "format", "f", formatHex, "output format: `hex`, `base64` or `raw`")
	flags.BoolVar(&opts.Separate, "separate", false, "print the encoding of each value on its own line")
	addServerFlag(flags, &opts.Server)

	return cmd
}

func encodeHandler(opts *encodeCmdOptions, cmd *cobra.Command, args []string) error {
	if err := validateFormat(opts.Format); err != nil {
		return errors.WithStack(err)
	}
	if opts.Separate && opts.Format == formatRaw {
		return errors.Wrap(errs.Unsupported, "--separate can't be used with raw output")
	}

	values, err := parseValues(args)
	if err != nil {
		return errors.WithStack(err)
	}

	uc, err := newCodec(opts.Server)
	if err != nil {
		return errors.WithStack(err)
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if opts.Separate {
		each, err := uc.EncodeEach(ctx, values...)
		if err != nil {
			return errors.WithStack(err)
		}
		for _, encoded := range each {
			if _, err := out.Write(formatOutput(opts.Format, encoded)); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	encoded, err := uc.Encode(ctx, values...)
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = out.Write(formatOutput(opts.Format, encoded))
	return errors.WithStack(err)
}

func parseValues(args []string) ([]uint64, error) {
	var errList []error
	values := lo.FilterMap(args, func(arg string, i int) (uint64, bool) {
		value, err := strconv.ParseUint(arg, 10, 64)
		switch {
		case err == nil:
			return value, true
		case errors.Is(err, strconv.ErrRange):
			errList = append(errList, errors.Wrapf(errs.OverflowUint64, "argument #%d %q", i+1, arg))
		default:
			errList = append(errList, errors.Wrapf(errs.InvalidArgument, "argument #%d %q is not an unsigned decimal integer", i+1, arg))
		}
		return 0, false
	})
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return values, nil
}
