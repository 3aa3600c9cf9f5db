package httphandler

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/common"
	"github.com/gaze-network/leb128/common/errs"
	"github.com/gaze-network/leb128/internal/usecase"
	"github.com/gaze-network/leb128/pkg/leb128"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const (
	decodeBatchMaxQueries  = 100
	decodeBatchConcurrency = 8
)

type decodeBatchRequest struct {
	Queries []decodeRequest `json:"queries"`
}

func (r decodeBatchRequest) Validate() ([][]byte, error) {
	var errList []error
	if len(r.Queries) == 0 {
		errList = append(errList, errors.New("queries cannot be empty"))
	}
	if len(r.Queries) > decodeBatchMaxQueries {
		errList = append(errList, errors.Errorf("cannot exceed %d queries", decodeBatchMaxQueries))
	}
	inputs := make([][]byte, len(r.Queries))
	for i, query := range r.Queries {
		data, err := decodeHex(query.Data)
		if err != nil {
			errList = append(errList, errors.Wrapf(err, "queries[%d]", i))
			continue
		}
		inputs[i] = data
	}
	if err := errs.WithPublicMessage(errors.Join(errList...), "validation error"); err != nil {
		return nil, err
	}
	return inputs, nil
}

type decodeBatchResult struct {
	List []*decodeResult `json:"list"`
}

type decodeBatchResponse = common.HttpResponse[decodeBatchResult]

func (h *HttpHandler) DecodeBatch(ctx *fiber.Ctx) (err error) {
	var req decodeBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	inputs, err := req.Validate()
	if err != nil {
		return errors.WithStack(err)
	}

	results := make([]*decodeResult, len(inputs))
	eg, ectx := errgroup.WithContext(ctx.UserContext())
	eg.SetLimit(decodeBatchConcurrency)
	for i, data := range inputs {
		i, data := i, data
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return errors.WithStack(err)
			}
			result, err := h.usecase.Decode(ectx, data, req.Queries[i].UpperBound)
			if err != nil {
				code := ""
				if errors.Is(err, leb128.ErrResultTooLarge) {
					code = usecase.ErrCodeResultTooLarge
				}
				return errs.WithPublicMessageCode(err, fmt.Sprintf("queries[%d]", i), code)
			}
			results[i] = mapDecodeResult(result)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.WithStack(fiber.NewError(fiber.StatusRequestTimeout, "request cancelled"))
		}
		return errors.Wrap(err, "error during decode batch")
	}

	return errors.WithStack(ctx.JSON(decodeBatchResponse{
		Result: &decodeBatchResult{
			List: results,
		},
	}))
}
