// Package usecase implements the codec operations shared by the CLI and the HTTP API:
// encoding lists of values and decoding concatenated encodings.
package usecase

import (
	"github.com/gaze-network/leb128/internal/config"
	"github.com/gaze-network/leb128/pkg/leb128"
)

type Usecase struct {
	upperBound    *uint64
	maxInputBytes int
}

func New(conf config.CodecConfig) *Usecase {
	return &Usecase{
		upperBound:    conf.UpperBound,
		maxInputBytes: conf.MaxInputBytes,
	}
}

// bound returns the upper bound for a request: the request's own, else the configured default.
func (u *Usecase) bound(upperBound *uint64) uint64 {
	if upperBound != nil {
		return *upperBound
	}
	if u.upperBound != nil {
		return *u.upperBound
	}
	return leb128.NoBound
}
