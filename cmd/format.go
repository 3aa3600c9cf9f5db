package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/common/errs"
)

// Input and output formats of encoded bytes.
const (
	formatHex    = "hex"
	formatBase64 = "base64"
	formatRaw    = "raw"
)

func validateFormat(format string) error {
	switch format {
	case formatHex, formatBase64, formatRaw:
		return nil
	}
	return errors.Wrapf(errs.Unsupported, "format %q, E.g. %q, %q or %q", format, formatHex, formatBase64, formatRaw)
}

// parseInput converts textual input in the given format into bytes.
// Whitespace is ignored, so input may be wrapped across lines.
func parseInput(format string, input []byte) ([]byte, error) {
	switch format {
	case formatRaw:
		return input, nil
	case formatHex:
		s := strings.Join(strings.Fields(string(input)), "")
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		data, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "invalid hex input: %v", err)
		}
		return data, nil
	case formatBase64:
		data, err := base64.StdEncoding.DecodeString(string(bytes.Join(bytes.Fields(input), nil)))
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "invalid base64 input: %v", err)
		}
		return data, nil
	}
	return nil, validateFormat(format)
}

// formatOutput renders encoded bytes in the given format. Text formats end with a newline.
func formatOutput(format string, data []byte) []byte {
	switch format {
	case formatHex:
		return []byte(hex.EncodeToString(data) + "\n")
	case formatBase64:
		return []byte(base64.StdEncoding.EncodeToString(data) + "\n")
	}
	return data
}
