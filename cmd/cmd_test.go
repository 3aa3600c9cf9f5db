package cmd

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/gaze-network/leb128/common/errs"
	"github.com/gaze-network/leb128/internal/api"
	"github.com/gaze-network/leb128/internal/config"
	"github.com/gaze-network/leb128/internal/constants"
	"github.com/gaze-network/leb128/internal/usecase"
	"github.com/gaze-network/leb128/pkg/leb128"
	"github.com/gaze-network/leb128/pkg/middleware/requestlogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, constants.Version+"\n", out)
}

func TestEncodeCommand(t *testing.T) {
	testcases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"hex", []string{"encode", "0", "127", "128", "300"}, "007f8001ac02\n"},
		{"separate", []string{"encode", "--separate", "0", "300"}, "00\nac02\n"},
		{"base64", []string{"encode", "-f", "base64", "300"}, "rAI=\n"},
		{"raw", []string{"encode", "--format", "raw", "300"}, "\xac\x02"},
		{"max", []string{"encode", "18446744073709551615"}, "ffffffffffffffffff01\n"},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, "", tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestEncodeCommandErrors(t *testing.T) {
	testcases := []struct {
		name     string
		args     []string
		expected error
	}{
		{"negative", []string{"encode", "--", "-1"}, errs.InvalidArgument},
		{"not_a_number", []string{"encode", "abc"}, errs.InvalidArgument},
		{"overflow", []string{"encode", "18446744073709551616"}, errs.OverflowUint64},
		{"unknown_format", []string{"encode", "--format", "xml", "1"}, errs.Unsupported},
		{"separate_raw", []string{"encode", "--separate", "--format", "raw", "1"}, errs.Unsupported},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, "", tc.args...)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestDecodeCommand(t *testing.T) {
	testcases := []struct {
		name     string
		stdin    string
		args     []string
		expected string
	}{
		{"argument", "", []string{"decode", "ac02"}, "300\n"},
		{"prefixed", "", []string{"decode", "0x8001"}, "128\n"},
		{"stdin_hex", "00 7f\n8001\n", []string{"decode"}, "0\n127\n128\n"},
		{"stdin_base64", "rAI=\n", []string{"decode", "--format", "base64"}, "300\n"},
		{"stdin_raw", "\x80\x01\xac\x02", []string{"decode", "--format", "raw"}, "128\n300\n"},
		{"bound_accepts", "", []string{"decode", "--bound", "300", "ac02"}, "300\n"},
		{"truncated_tail", "", []string{"decode", "0080"}, "0\n"},
		{"truncated_raw_tail", "\x00\x80", []string{"decode", "-f", "raw"}, "0\n"},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.stdin, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestDecodeCommandErrors(t *testing.T) {
	testcases := []struct {
		name     string
		stdin    string
		args     []string
		expected error
	}{
		{"bound_rejects", "", []string{"decode", "--bound", "200", "ac02"}, leb128.ErrResultTooLarge},
		{"bound_rejects_raw", "\xac\x02", []string{"decode", "--bound", "200", "-f", "raw"}, leb128.ErrResultTooLarge},
		{"overflow", "", []string{"decode", "ffffffffffffffffff02"}, leb128.ErrResultTooLarge},
		{"strict", "", []string{"decode", "--strict", "80"}, errs.Incomplete},
		{"strict_raw", "\x80", []string{"decode", "--strict", "-f", "raw"}, errs.Incomplete},
		{"invalid_hex", "", []string{"decode", "xyz"}, errs.InvalidArgument},
		{"invalid_base64", "", []string{"decode", "-f", "base64", "%%"}, errs.InvalidArgument},
		{"empty_stdin", "  \n", []string{"decode"}, errs.InvalidArgument},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.stdin, tc.args...)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestDecodeStrictKeepsValues(t *testing.T) {
	out, err := execute(t, "", "decode", "--strict", "ac0280")
	assert.ErrorIs(t, err, errs.Incomplete)
	assert.Equal(t, "300\n", out)
}

func TestRemoteCodec(t *testing.T) {
	app, err := api.NewHTTPServer(config.HTTPServerConfig{
		BodyLimit: config.DefaultBodyLimit,
		Logger:    requestlogger.Config{Disable: true},
	}, usecase.New(config.CodecConfig{}))
	require.NoError(t, err)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})
	server := "http://" + ln.Addr().String()

	out, err := execute(t, "", "encode", "--server", server, "0", "300")
	require.NoError(t, err)
	assert.Equal(t, "00ac02\n", out)

	out, err = execute(t, "", "encode", "--server", server, "--separate", "0", "300")
	require.NoError(t, err)
	assert.Equal(t, "00\nac02\n", out)

	out, err = execute(t, "\x80\x01\xac\x02", "decode", "--server", server, "-f", "raw")
	require.NoError(t, err)
	assert.Equal(t, "128\n300\n", out)

	_, err = execute(t, "", "decode", "--server", server, "--bound", "200", "ac02")
	assert.ErrorIs(t, err, leb128.ErrResultTooLarge)

	_, err = execute(t, "", "decode", "--server", server, "--strict", "80")
	assert.ErrorIs(t, err, errs.Incomplete)

	// whitespace bytes are valid raw input
	out, err = execute(t, "\x20", "decode", "--server", server, "-f", "raw")
	require.NoError(t, err)
	assert.Equal(t, "32\n", out)

	out, err = execute(t, "\t\n", "decode", "--server", server, "-f", "raw")
	require.NoError(t, err)
	assert.Equal(t, "9\n10\n", out)

	out, err = execute(t, "", "decode", "--server", server, "-f", "raw")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = execute(t, "\x00\x80\x80", "decode", "--server", server, "--strict", "-f", "raw")
	assert.ErrorIs(t, err, errs.Incomplete)
	assert.ErrorContains(t, err, "2 trailing bytes")
}

func TestDecodeStrictPendingBytes(t *testing.T) {
	testcases := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"raw_stream", "\x00\x80\x80", []string{"decode", "--strict", "-f", "raw"}},
		{"hex", "", []string{"decode", "--strict", "008080"}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.stdin, tc.args...)
			assert.ErrorIs(t, err, errs.Incomplete)
			assert.ErrorContains(t, err, "2 trailing bytes")
			assert.Equal(t, "0\n", out)
		})
	}
}

func TestDecodeRawWhitespace(t *testing.T) {
	out, err := execute(t, " \t", "decode", "-f", "raw")
	require.NoError(t, err)
	assert.Equal(t, "32\n9\n", out)

	out, err = execute(t, "", "decode", "-f", "raw")
	require.NoError(t, err)
	assert.Empty(t, out)
}
