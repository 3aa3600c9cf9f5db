package httphandler

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/common/errs"
	"github.com/gaze-network/leb128/internal/usecase"
)

type HttpHandler struct {
	usecase *usecase.Usecase
}

func New(usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
	}
}

// decodeHex parses hex input, with or without a "0x" prefix.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "data is not valid hex: %v", err)
	}
	return data, nil
}
