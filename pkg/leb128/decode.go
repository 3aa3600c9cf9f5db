package leb128

import (
	"io"

	"github.com/cockroachdb/errors"
)

// Read decodes one value from r without an upper bound.
// See [ReadBounded] for the meaning of the results.
func Read(r io.ByteReader) (value uint64, ok bool, err error) {
	return ReadBounded(r, NoBound)
}

// ReadBounded decodes one value from r, consuming bytes up to and including
// the terminating byte.
//
//   - ok is true when a complete value was decoded.
//   - ok is false with a nil error when r returned io.EOF before the terminating
//     byte. The caller decides whether that means truncated input or "wait for more".
//   - [ErrResultTooLarge] is returned as soon as the value decoded so far exceeds
//     upperBound. No further bytes are consumed.
//   - any other error from r is returned marked with [ErrIO].
//
// Padded encodings such as [0x80 0x00] are accepted, but only within [MaxLen] bytes:
// an 11th byte, or a 10th byte with a payload above 1, returns [ErrResultTooLarge]
// even with [NoBound], since the value would not fit in a uint64.
func ReadBounded(r io.ByteReader, upperBound uint64) (value uint64, ok bool, err error) {
	d := decoder{bound: upperBound}
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, false, nil
			}
			return 0, false, errors.WithStack(&ioError{err: err})
		}
		done, err := d.feed(b)
		if err != nil {
			return 0, false, err
		}
		if done {
			return d.value, true, nil
		}
	}
}

// Decode decodes one value from the start of data.
// It returns the value and the number of bytes consumed. n == 0 with a nil error
// means data ended before the terminating byte. Padding and overflow follow [ReadBounded].
func Decode(data []byte, upperBound uint64) (value uint64, n int, err error) {
	d := decoder{bound: upperBound}
	for i, b := range data {
		done, err := d.feed(b)
		if err != nil {
			return 0, 0, err
		}
		if done {
			return d.value, i + 1, nil
		}
	}
	return 0, 0, nil
}

type decoder struct {
	value uint64
	shift uint
	bound uint64
}

// feed adds one encoded byte to the accumulator and reports whether it was the last one.
func (d *decoder) feed(b byte) (done bool, err error) {
	chunk := uint64(b & payloadMask)

	// bits that would be shifted out of a uint64
	if d.shift >= 64 || (d.shift == 63 && chunk > 1) {
		return false, errors.WithStack(ErrResultTooLarge)
	}

	d.value |= chunk << d.shift
	if d.value > d.bound {
		return false, errors.WithStack(ErrResultTooLarge)
	}
	d.shift += groupBits
	return b&continuationBit == 0, nil
}
