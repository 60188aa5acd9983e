package extractor

import (
	"errors"
	"fmt"
)

// ErrFormat is matched by every FormatError through errors.Is
var ErrFormat = errors.New("sdf format error")

// FormatError reports a record that cannot be turned into a molecule
type FormatError struct {
	Title string
	// Line is the 1-based line number in the input, 0 when unknown
	Line int
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	s := e.Msg
	if e.Err != nil {
		s = fmt.Sprintf("%s: %s", e.Msg, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d (%q): %s", e.Line, e.Title, s)
	}
	return fmt.Sprintf("record %q: %s", e.Title, s)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func formatErrorf(b Block, offset int, cause error, format string, args ...interface{}) *FormatError {
	fe := &FormatError{
		Title: b.Title(),
		Msg:   fmt.Sprintf(format, args...),
		Err:   cause,
	}
	if b.FirstLine > 0 {
		fe.Line = b.FirstLine + offset
	}
	return fe
}
