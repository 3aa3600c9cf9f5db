package httphandler

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/common"
	"github.com/gaze-network/leb128/common/errs"
	"github.com/gaze-network/leb128/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

type decodeRequest struct {
	Data       string  `json:"data"`
	UpperBound *uint64 `json:"upperBound"`
}

func (r decodeRequest) Validate() ([]byte, error) {
	data, err := decodeHex(r.Data)
	if err != nil {
		return nil, errs.WithPublicMessage(err, "validation error")
	}
	return data, nil
}

type decodeResult struct {
	Values     []uint64 `json:"values"`
	Consumed   int      `json:"consumed"`
	Incomplete bool     `json:"incomplete"`
	Remaining  string   `json:"remaining,omitempty"`
}

func mapDecodeResult(result *usecase.DecodeResult) *decodeResult {
	return &decodeResult{
		Values:     result.Values,
		Consumed:   result.Consumed,
		Incomplete: result.Incomplete,
		Remaining:  hex.EncodeToString(result.Remaining),
	}
}

type decodeResponse = common.HttpResponse[decodeResult]

func (h *HttpHandler) Decode(ctx *fiber.Ctx) (err error) {
	var req decodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	data, err := req.Validate()
	if err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.Decode(ctx.UserContext(), data, req.UpperBound)
	if err != nil {
		return errors.Wrap(err, "error during decode")
	}

	return errors.WithStack(ctx.JSON(decodeResponse{
		Result: mapDecodeResult(result),
	}))
}
