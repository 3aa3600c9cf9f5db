package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/pkg/bufferpool"
	"github.com/gaze-network/leb128/pkg/leb128"
	"github.com/gaze-network/leb128/pkg/logger"
	"github.com/gaze-network/leb128/pkg/logger/slogx"
	"github.com/samber/lo"
)

// Encode returns the concatenated encodings of values.
func (u *Usecase) Encode(ctx context.Context, values ...uint64) ([]byte, error) {
	buf := bufferpool.Get()
	defer buf.Release()

	buf.Grow(lo.SumBy(values, leb128.Size))
	for i, v := range values {
		if err := leb128.Write(buf, v); err != nil {
			return nil, errors.Wrapf(err, "can't encode value #%d", i)
		}
	}
	logger.DebugContext(ctx, "Encoded values", slogx.Int("count", len(values)), slogx.Int("length", buf.Len()))
	return append([]byte(nil), buf.Bytes()...), nil
}

// EncodeEach returns the encoding of every value separately.
func (u *Usecase) EncodeEach(ctx context.Context, values ...uint64) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return lo.Map(values, func(v uint64, _ int) []byte {
		return leb128.Encode(v)
	}), nil
}
