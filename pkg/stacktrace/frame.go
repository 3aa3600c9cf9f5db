package stacktrace

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
)

// Frame is a resolved stack frame.
type Frame struct {
	runtime.Frame
}

// Location returns "file:line" with the file reduced to its base name.
func (f Frame) Location() string {
	return filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
}

func (f Frame) String() string {
	return f.Function + " " + f.File + ":" + strconv.Itoa(f.Line)
}

// Format implements fmt.Formatter.
//
//	%s   function name
//	%v   function file:line
//	%+v  function, then file:line on an indented line
func (f Frame) Format(fs fmt.State, verb rune) {
	switch {
	case verb == 's':
		fmt.Fprint(fs, f.Function)
	case verb == 'v' && fs.Flag('+'):
		fmt.Fprintf(fs, "%s\n\t%s:%d", f.Function, f.File, f.Line)
	default:
		fmt.Fprint(fs, f.String())
	}
}
