// Package leb128 encodes and decodes unsigned 64-bit integers using LEB128
// (Little Endian Base 128).
//
// Each encoded byte carries 7 bits of the value, least-significant group first.
// The high bit of a byte is set when more bytes follow. A uint64 needs at most
// [MaxLen] bytes.
//
// The package holds no state. Sinks and sources are only used for the duration
// of a call.
package leb128

import (
	"math"

	"github.com/gaze-network/leb128/common/errs"
)

const (
	// ErrResultTooLarge is returned when the decoded value exceeds the upper bound,
	// or no longer fits in a uint64.
	ErrResultTooLarge = errs.ErrorKind("leb128: result too large")

	// ErrIO marks failures returned by the caller's sink or source.
	// The original error stays in the chain and can still be matched with errors.Is.
	ErrIO = errs.ErrorKind("leb128: i/o failure")
)

const (
	// MaxLen is the maximum length of a LEB128 encoded uint64.
	MaxLen = 10

	// NoBound accepts every uint64 value.
	NoBound = math.MaxUint64
)

const (
	payloadMask     = 0b0111_1111
	continuationBit = 0b1000_0000
	groupBits       = 7
)

// ioError keeps the sink or source failure in the chain and matches [ErrIO].
type ioError struct {
	err error
}

func (e *ioError) Error() string {
	return string(ErrIO) + ": " + e.err.Error()
}

func (e *ioError) Unwrap() error {
	return e.err
}

func (e *ioError) Is(target error) bool {
	return target == error(ErrIO)
}
