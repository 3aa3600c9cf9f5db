package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// InvalidArgument is returned when a caller supplied value can't be parsed or is out of range.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Unsupported is returned when a requested format or option is not supported.
	Unsupported = ErrorKind("Unsupported")

	// Incomplete is returned when a caller asks for strict decoding and the input ends
	// in the middle of an encoded value.
	Incomplete = ErrorKind("Incomplete Input")

	// InputTooLarge is returned when an input exceeds the configured size limit.
	InputTooLarge = ErrorKind("Input Too Large")

	OverflowUint64 = ErrorKind("overflow uint64")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
