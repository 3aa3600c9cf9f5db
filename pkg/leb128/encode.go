package leb128

import (
	"io"
	"math/bits"

	"github.com/cockroachdb/errors"
)

// Write writes the LEB128 encoding of value to w.
// A write failure stops encoding and is returned marked with [ErrIO].
func Write(w io.ByteWriter, value uint64) error {
	for {
		b := byte(value & payloadMask)
		value >>= groupBits
		if value != 0 {
			b |= continuationBit
		}
		if err := w.WriteByte(b); err != nil {
			return errors.WithStack(&ioError{err: err})
		}
		if value == 0 {
			return nil
		}
	}
}

// Append appends the LEB128 encoding of value to dst and returns the extended slice.
func Append(dst []byte, value uint64) []byte {
	for value > payloadMask {
		dst = append(dst, byte(value&payloadMask)|continuationBit)
		value >>= groupBits
	}
	return append(dst, byte(value))
}

// Encode returns the LEB128 encoding of value.
func Encode(value uint64) []byte {
	return Append(make([]byte, 0, Size(value)), value)
}

// Size returns the number of bytes needed to encode value.
func Size(value uint64) int {
	if value == 0 {
		return 1
	}
	return (bits.Len64(value) + groupBits - 1) / groupBits
}
