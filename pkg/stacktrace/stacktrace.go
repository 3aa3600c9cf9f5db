// Package stacktrace turns program counters into printable frames.
package stacktrace

import (
	"runtime"
	"strings"
)

const maxDepth = 64

type StackTrace struct {
	Frames []Frame
}

// Lines returns one "function file:line" entry per frame.
func (s *StackTrace) Lines() []string {
	lines := make([]string, 0, len(s.Frames))
	for _, f := range s.Frames {
		lines = append(lines, f.String())
	}
	return lines
}

func (s *StackTrace) String() string {
	return strings.Join(s.Lines(), "\n")
}

// ParsePCS resolves program counters, innermost first.
// Runtime frames at the bottom of the stack (goexit, main) are dropped.
func ParsePCS(pcs []uintptr) *StackTrace {
	st := &StackTrace{Frames: make([]Frame, 0, len(pcs))}
	if len(pcs) == 0 {
		return st
	}
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		st.Frames = append(st.Frames, Frame{Frame: frame})
		if !more {
			break
		}
	}
	for len(st.Frames) > 0 && strings.HasPrefix(st.Frames[len(st.Frames)-1].Function, "runtime.") {
		st.Frames = st.Frames[:len(st.Frames)-1]
	}
	return st
}

// Capture returns the stack of the caller, skipping skip additional frames.
func Capture(skip int) *StackTrace {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pcs)
	return ParsePCS(pcs[:n])
}
