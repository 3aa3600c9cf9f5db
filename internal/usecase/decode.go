package usecase

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/common/errs"
	"github.com/gaze-network/leb128/pkg/leb128"
	"github.com/gaze-network/leb128/pkg/logger"
	"github.com/gaze-network/leb128/pkg/logger/slogx"
)

const ErrCodeResultTooLarge = "RESULT_TOO_LARGE"

type DecodeResult struct {
	// Values holds every complete value, in input order.
	Values []uint64

	// Consumed is the number of bytes that belong to complete values.
	Consumed int

	// Incomplete is true when the input ends in the middle of a value.
	// The bytes of that value are in Remaining.
	Incomplete bool
	Remaining  []byte
}

// Decode decodes a concatenation of encoded values.
// upperBound applies to every value; nil falls back to the configured bound.
func (u *Usecase) Decode(ctx context.Context, data []byte, upperBound *uint64) (*DecodeResult, error) {
	if u.maxInputBytes > 0 && len(data) > u.maxInputBytes {
		return nil, errs.WithPublicMessage(
			errors.Wrapf(errs.InputTooLarge, "input has %d bytes, limit is %d", len(data), u.maxInputBytes),
			"invalid input",
		)
	}

	bound := u.bound(upperBound)
	result := &DecodeResult{Values: make([]uint64, 0, len(data)/2+1)}
	for result.Consumed < len(data) {
		value, n, err := leb128.Decode(data[result.Consumed:], bound)
		if err != nil {
			return nil, errs.WithPublicMessageCode(
				errors.Wrapf(err, "value #%d at offset %d", len(result.Values), result.Consumed),
				"decode failed", ErrCodeResultTooLarge,
			)
		}
		if n == 0 {
			result.Incomplete = true
			result.Remaining = append([]byte(nil), data[result.Consumed:]...)
			logger.DebugContext(ctx, "Input ends inside a value",
				slogx.Int("offset", result.Consumed),
				slogx.Hex("remaining", result.Remaining),
			)
			break
		}
		result.Values = append(result.Values, value)
		result.Consumed += n
	}
	return result, nil
}

// DecodeStream decodes values from r until it is exhausted, calling fn for each one.
// pending is the number of bytes read after the last complete value, non-zero when
// r ended in the middle of a value.
func (u *Usecase) DecodeStream(ctx context.Context, r io.ByteReader, upperBound *uint64, fn func(value uint64) error) (pending int, err error) {
	bound := u.bound(upperBound)
	cr := &countingReader{r: r}
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return 0, errors.WithStack(err)
		}

		start := cr.n
		value, ok, err := leb128.ReadBounded(cr, bound)
		if err != nil {
			if errors.Is(err, leb128.ErrResultTooLarge) {
				return 0, errs.WithPublicMessageCode(errors.Wrapf(err, "value #%d", index), "decode failed", ErrCodeResultTooLarge)
			}
			return 0, errors.Wrapf(err, "can't read value #%d", index)
		}
		if !ok {
			// a clean end consumes nothing
			return cr.n - start, nil
		}
		if err := fn(value); err != nil {
			return 0, errors.WithStack(err)
		}
	}
}

type countingReader struct {
	r io.ByteReader
	n int
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}
