package httphandler

import (
	"encoding/hex"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/common"
	"github.com/gaze-network/leb128/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const maxEncodeValues = 10_000

type encodedValue struct {
	Value  uint64 `json:"value"`
	Hex    string `json:"hex"`
	Length int    `json:"length"`
}

type getEncodeRequest struct {
	Value string `params:"value"`
}

func (r getEncodeRequest) Validate() (uint64, error) {
	value, err := strconv.ParseUint(r.Value, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			err = errors.Wrapf(errs.OverflowUint64, "value %q", r.Value)
		} else {
			err = errors.Wrapf(errs.InvalidArgument, "value %q is not an unsigned decimal integer", r.Value)
		}
		return 0, errs.WithPublicMessage(err, "validation error")
	}
	return value, nil
}

type getEncodeResponse = common.HttpResponse[encodedValue]

func (h *HttpHandler) GetEncode(ctx *fiber.Ctx) (err error) {
	var req getEncodeRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	value, err := req.Validate()
	if err != nil {
		return errors.WithStack(err)
	}

	encoded, err := h.usecase.Encode(ctx.UserContext(), value)
	if err != nil {
		return errors.Wrap(err, "error during encode")
	}
	return errors.WithStack(ctx.JSON(getEncodeResponse{
		Result: &encodedValue{
			Value:  value,
			Hex:    hex.EncodeToString(encoded),
			Length: len(encoded),
		},
	}))
}

type encodeRequest struct {
	Values []uint64 `json:"values"`
}

func (r encodeRequest) Validate() error {
	var errList []error
	if len(r.Values) == 0 {
		errList = append(errList, errors.New("values is required"))
	}
	if len(r.Values) > maxEncodeValues {
		errList = append(errList, errors.Errorf("values must not contain more than %d items", maxEncodeValues))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type encodeResult struct {
	Hex    string         `json:"hex"`
	Length int            `json:"length"`
	Items  []encodedValue `json:"items"`
}

type encodeResponse = common.HttpResponse[encodeResult]

func (h *HttpHandler) Encode(ctx *fiber.Ctx) (err error) {
	var req encodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	encoded, err := h.usecase.Encode(ctx.UserContext(), req.Values...)
	if err != nil {
		return errors.Wrap(err, "error during encode")
	}
	each, err := h.usecase.EncodeEach(ctx.UserContext(), req.Values...)
	if err != nil {
		return errors.Wrap(err, "error during encode")
	}
	items := lo.Map(each, func(item []byte, i int) encodedValue {
		return encodedValue{
			Value:  req.Values[i],
			Hex:    hex.EncodeToString(item),
			Length: len(item),
		}
	})

	return errors.WithStack(ctx.JSON(encodeResponse{
		Result: &encodeResult{
			Hex:    hex.EncodeToString(encoded),
			Length: len(encoded),
			Items:  items,
		},
	}))
}
