// Package client talks to a running codec HTTP API, so the CLI can delegate
// encoding and decoding to a shared server.
package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/common"
	"github.com/gaze-network/leb128/common/errs"
	"github.com/gaze-network/leb128/internal/usecase"
	"github.com/gaze-network/leb128/pkg/httpclient"
	"github.com/gaze-network/leb128/pkg/leb128"
	"github.com/samber/lo"
)

type Client struct {
	http *httpclient.Client
}

func New(baseURL string, config ...httpclient.Config) (*Client, error) {
	hc, err := httpclient.New(baseURL, config...)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &Client{http: hc}, nil
}

type encodedValue struct {
	Value  uint64 `json:"value"`
	Hex    string `json:"hex"`
	Length int    `json:"length"`
}

type encodeResult struct {
	Hex    string         `json:"hex"`
	Length int            `json:"length"`
	Items  []encodedValue `json:"items"`
}

type decodeRequest struct {
	Data       string  `json:"data"`
	UpperBound *uint64 `json:"upperBound,omitempty"`
}

type decodeResult struct {
	Values     []uint64 `json:"values"`
	Consumed   int      `json:"consumed"`
	Incomplete bool     `json:"incomplete"`
	Remaining  string   `json:"remaining"`
}

func (c *Client) encode(ctx context.Context, values []uint64) (*encodeResult, error) {
	switch len(values) {
	case 0:
		return &encodeResult{}, nil
	case 1:
		var item encodedValue
		if err := c.get(ctx, "/v1/encode/"+strconv.FormatUint(values[0], 10), &item); err != nil {
			return nil, errors.WithStack(err)
		}
		return &encodeResult{Hex: item.Hex, Length: item.Length, Items: []encodedValue{item}}, nil
	}
	var result encodeResult
	if err := c.post(ctx, "/v1/encode", map[string]any{"values": values}, &result); err != nil {
		return nil, errors.WithStack(err)
	}
	return &result, nil
}

// Encode returns the concatenated encodings of values, computed by the server.
func (c *Client) Encode(ctx context.Context, values ...uint64) ([]byte, error) {
	result, err := c.encode(ctx, values)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	encoded, err := hex.DecodeString(result.Hex)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex in response")
	}
	return encoded, nil
}

// EncodeEach returns the encoding of every value separately, computed by the server.
func (c *Client) EncodeEach(ctx context.Context, values ...uint64) ([][]byte, error) {
	result, err := c.encode(ctx, values)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var errList []error
	each := lo.Map(result.Items, func(item encodedValue, i int) []byte {
		encoded, err := hex.DecodeString(item.Hex)
		if err != nil {
			errList = append(errList, errors.Wrapf(err, "invalid hex in response item #%d", i))
		}
		return encoded
	})
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return each, nil
}

// Decode decodes a concatenation of encoded values on the server.
// A nil upperBound leaves the server's configured bound in effect.
func (c *Client) Decode(ctx context.Context, data []byte, upperBound *uint64) (*usecase.DecodeResult, error) {
	var result decodeResult
	req := decodeRequest{Data: hex.EncodeToString(data), UpperBound: upperBound}
	if err := c.post(ctx, "/v1/decode", req, &result); err != nil {
		return nil, errors.WithStack(err)
	}
	remaining, err := hex.DecodeString(result.Remaining)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex in response")
	}
	return &usecase.DecodeResult{
		Values:     result.Values,
		Consumed:   result.Consumed,
		Incomplete: result.Incomplete,
		Remaining:  remaining,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.Get(ctx, path, httpclient.RequestOptions{})
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	return errors.WithStack(unmarshalResult(resp, out))
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "can't marshal request body")
	}
	resp, err := c.http.Post(ctx, path, httpclient.RequestOptions{Body: payload})
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	return errors.WithStack(unmarshalResult(resp, out))
}

// unmarshalResult unwraps the response envelope into out, or returns the error it carries.
func unmarshalResult(resp *httpclient.HttpResponse, out any) error {
	var envelope common.HttpResponse[json.RawMessage]
	if err := resp.UnmarshalBody(&envelope); err != nil {
		return errors.Wrapf(err, "unexpected response, status %d", resp.StatusCode())
	}
	if resp.StatusCode() != http.StatusOK {
		return responseError(resp.StatusCode(), envelope)
	}
	if envelope.Result == nil {
		return errors.Errorf("empty result from %s", resp.URL)
	}
	return errors.Wrap(json.Unmarshal(*envelope.Result, out), "can't unmarshal result")
}

// responseError maps an error response back onto the error kinds of the local codec,
// so callers handle remote and local failures the same way.
func responseError(status int, envelope common.HttpResponse[json.RawMessage]) error {
	message := http.StatusText(status)
	if envelope.Error != nil {
		message = *envelope.Error
	}
	switch {
	case envelope.Code == usecase.ErrCodeResultTooLarge:
		message = strings.TrimSuffix(message, ": "+leb128.ErrResultTooLarge.Error())
		return errs.WithPublicMessageCode(errors.Wrap(leb128.ErrResultTooLarge, message), "", envelope.Code)
	case status == http.StatusRequestEntityTooLarge:
		return errors.Wrap(errs.InputTooLarge, message)
	case status == http.StatusBadRequest:
		return errors.Wrap(errs.InvalidArgument, message)
	}
	return errors.Errorf("server responded %d: %s", status, message)
}
