package stacktrace

import "github.com/cockroachdb/errors/errbase"

// ParseErrStackTrace returns the innermost stack trace found in the error chain.
//
// Supported error types are those that implement the [github.com/cockroachdb/errors/errbase.StackTraceProvider] interface.
func ParseErrStackTrace(err error) (*StackTrace, bool) {
	var found errbase.StackTrace
	for ; err != nil; err = errbase.UnwrapOnce(err) {
		if errStack, ok := err.(errbase.StackTraceProvider); ok {
			found = errStack.StackTrace()
		}
	}
	if len(found) == 0 {
		return nil, false
	}
	pcs := make([]uintptr, len(found))
	for i, frame := range found {
		pcs[i] = uintptr(frame)
	}
	return ParsePCS(pcs), true
}
