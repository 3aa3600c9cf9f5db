package cmd

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/internal/api/client"
	"github.com/gaze-network/leb128/internal/config"
	"github.com/gaze-network/leb128/internal/usecase"
	"github.com/gaze-network/leb128/pkg/httpclient"
	"github.com/spf13/pflag"
)

const remoteTimeout = 30 * time.Second

// codec is implemented by the local usecase and by the API client.
type codec interface {
	Encode(ctx context.Context, values ...uint64) ([]byte, error)
	EncodeEach(ctx context.Context, values ...uint64) ([][]byte, error)
	Decode(ctx context.Context, data []byte, upperBound *uint64) (*usecase.DecodeResult, error)
}

var (
	_ codec = (*usecase.Usecase)(nil)
	_ codec = (*client.Client)(nil)
)

func addServerFlag(flags *pflag.FlagSet, server *string) {
	flags.StringVar(server, "server", "", "delegate to a running `leb128 serve` API, E.g. `http://localhost:8080`")
}

// newCodec returns a client of the API at server, or the local codec when server is empty.
func newCodec(server string) (codec, error) {
	conf := config.Load()
	if server == "" {
		return usecase.New(conf.Codec), nil
	}
	c, err := client.New(server, httpclient.Config{
		Debug:   conf.Logger.Debug,
		Timeout: remoteTimeout,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return c, nil
}
