package profile

import (
	"errors"
	"fmt"
	"io"
)

// FormatError reports a line that failed to decode.
type FormatError struct {
	Path string
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Status maps a reader result onto the end/malformed/record tri-state:
// 0 for a clean end of input, -1 for a malformed line or read failure,
// 1 for a decoded record.
func Status(err error) int {
	switch {
	case err == nil:
		return 1
	case errors.Is(err, io.EOF):
		return 0
	default:
		return -1
	}
}
