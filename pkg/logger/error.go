package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gaze-network/leb128/pkg/stacktrace"
)

// middlewareErrorStackTrace adds the verbose form and the stack trace of every
// logged error that carries one (errors created with cockroachdb/errors do).
func middlewareErrorStackTrace() middleware {
	return func(next handleFunc) handleFunc {
		return func(ctx context.Context, rec slog.Record) error {
			var extra []slog.Attr
			rec.Attrs(func(attr slog.Attr) bool {
				if attr.Key != ErrorKey {
					return true
				}
				err, ok := attr.Value.Any().(error)
				if !ok || err == nil {
					return true
				}
				extra = append(extra, slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", err)))
				if st, ok := stacktrace.ParseErrStackTrace(err); ok {
					extra = append(extra, slog.Any(ErrorStackTraceKey, st.Lines()))
				}
				return false
			})
			rec.AddAttrs(extra...)
			return next(ctx, rec)
		}
	}
}
