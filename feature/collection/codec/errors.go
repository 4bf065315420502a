package codec

import "fmt"

// FormatError reports a document that is not well-formed against the
// DJ_PLAYLISTS schema. No partial document accompanies it.
type FormatError struct {
	// Msg describes the structural problem.
	Msg string
	// Err is the underlying parser error, if any.
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid library document: %s: %v", e.Msg, e.Err)
	}
	return "invalid library document: " + e.Msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}
