package errs

import (
	"fmt"

	"github.com/cockroachdb/errors/withstack"
)

// PublicError is an error whose message is safe to show to API and CLI users.
// The error handler of each surface decides how to render it (JSON body, stderr, etc.).
type PublicError struct {
	err     error
	message string
	code    string // optional machine readable code, e.g. "RESULT_TOO_LARGE"
}

func (p PublicError) Error() string {
	return p.err.Error()
}

func (p PublicError) Message() string {
	return p.message
}

func (p PublicError) Code() string {
	return p.code
}

func (p PublicError) Unwrap() error {
	return p.err
}

func WithPublicMessage(err error, prefix string) error {
	if err == nil {
		return nil
	}
	return withstack.WithStackDepth(&PublicError{err: err, message: publicMessage(err, prefix)}, 1)
}

func WithPublicMessageCode(err error, prefix string, code string) error {
	if err == nil {
		return nil
	}
	return withstack.WithStackDepth(&PublicError{err: err, message: publicMessage(err, prefix), code: code}, 1)
}

func publicMessage(err error, prefix string) string {
	if prefix == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s: %s", prefix, err.Error())
}
