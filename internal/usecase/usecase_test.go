package usecase

import (
	"bufio"
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/common/errs"
	"github.com/gaze-network/leb128/internal/config"
	"github.com/gaze-network/leb128/pkg/leb128"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	ctx := context.Background()
	u := New(config.CodecConfig{})

	encoded, err := u.Encode(ctx, 0, 127, 128, 300)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x7f, 0x80, 0x01, 0xac, 0x02}, encoded)

	encoded, err = u.Encode(ctx)
	require.NoError(t, err)
	assert.Empty(t, encoded)

	each, err := u.EncodeEach(ctx, 0, 300)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x00}, {0xac, 0x02}}, each)
}

func TestDecode(t *testing.T) {
	ctx := context.Background()

	t.Run("complete", func(t *testing.T) {
		t.Parallel()
		u := New(config.CodecConfig{})
		values := []uint64{0, 127, 128, 300, math.MaxUint64}
		data, err := u.Encode(ctx, values...)
		require.NoError(t, err)

		result, err := u.Decode(ctx, data, nil)
		require.NoError(t, err)
		assert.Equal(t, values, result.Values)
		assert.Equal(t, len(data), result.Consumed)
		assert.False(t, result.Incomplete)
		assert.Empty(t, result.Remaining)
	})
	t.Run("incomplete_tail", func(t *testing.T) {
		t.Parallel()
		u := New(config.CodecConfig{})
		result, err := u.Decode(ctx, []byte{0xac, 0x02, 0x80}, nil)
		require.NoError(t, err)
		assert.Equal(t, []uint64{300}, result.Values)
		assert.Equal(t, 2, result.Consumed)
		assert.True(t, result.Incomplete)
		assert.Equal(t, []byte{0x80}, result.Remaining)
	})
	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		u := New(config.CodecConfig{})
		result, err := u.Decode(ctx, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Values)
		assert.False(t, result.Incomplete)
	})
	t.Run("request_bound", func(t *testing.T) {
		t.Parallel()
		u := New(config.CodecConfig{})
		_, err := u.Decode(ctx, []byte{0x01, 0xac, 0x02}, lo.ToPtr[uint64](200))
		assert.ErrorIs(t, err, leb128.ErrResultTooLarge)

		publicErr := new(errs.PublicError)
		require.True(t, errors.As(err, &publicErr))
		assert.Equal(t, ErrCodeResultTooLarge, publicErr.Code())
		assert.Contains(t, publicErr.Message(), "value #1 at offset 1")
	})
	t.Run("configured_bound", func(t *testing.T) {
		t.Parallel()
		u := New(config.CodecConfig{UpperBound: lo.ToPtr[uint64](200)})
		_, err := u.Decode(ctx, []byte{0xac, 0x02}, nil)
		assert.ErrorIs(t, err, leb128.ErrResultTooLarge)

		// the request's own bound wins over the configured one
		result, err := u.Decode(ctx, []byte{0xac, 0x02}, lo.ToPtr[uint64](leb128.NoBound))
		require.NoError(t, err)
		assert.Equal(t, []uint64{300}, result.Values)
	})
	t.Run("input_too_large", func(t *testing.T) {
		t.Parallel()
		u := New(config.CodecConfig{MaxInputBytes: 2})
		_, err := u.Decode(ctx, []byte{0x00, 0x00, 0x00}, nil)
		assert.ErrorIs(t, err, errs.InputTooLarge)
	})
}

func TestDecodeStream(t *testing.T) {
	ctx := context.Background()
	u := New(config.CodecConfig{})

	collect := func(data []byte, bound *uint64) ([]uint64, int, error) {
		var values []uint64
		pending, err := u.DecodeStream(ctx, bufio.NewReader(bytes.NewReader(data)), bound, func(v uint64) error {
			values = append(values, v)
			return nil
		})
		return values, pending, err
	}

	values, pending, err := collect([]byte{0x00, 0xac, 0x02}, nil)
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.Equal(t, []uint64{0, 300}, values)

	values, pending, err = collect([]byte{0x00, 0xac}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
	assert.Equal(t, []uint64{0}, values)

	values, pending, err = collect([]byte{0x7f, 0x80, 0x80}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)
	assert.Equal(t, []uint64{127}, values)

	values, pending, err = collect(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.Empty(t, values)

	_, _, err = collect([]byte{0xac, 0x02}, lo.ToPtr[uint64](200))
	assert.ErrorIs(t, err, leb128.ErrResultTooLarge)

	stop := errors.New("stop")
	_, err = u.DecodeStream(ctx, bytes.NewReader([]byte{0x01, 0x02}), nil, func(uint64) error { return stop })
	assert.ErrorIs(t, err, stop)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = u.DecodeStream(cancelled, bytes.NewReader([]byte{0x01}), nil, func(uint64) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
