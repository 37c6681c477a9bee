package dashdaq

import (
	"errors"
	"fmt"
)

// ErrMalformedLog is matched by every *MalformedLogError.
var ErrMalformedLog = errors.New("dashdaq: malformed log")

// MalformedLogError reports a structural defect that prevents a log from
// being loaded at all.
type MalformedLogError struct {
	Reason string
	Row    int // 1-based source row, 0 when not tied to a row
}

func (e *MalformedLogError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("dashdaq: malformed log: %s (row %d)", e.Reason, e.Row)
	}
	return "dashdaq: malformed log: " + e.Reason
}

// Unwrap lets errors.Is(err, ErrMalformedLog) succeed.
func (e *MalformedLogError) Unwrap() error { return ErrMalformedLog }

func malformed(row int, format string, args ...any) error {
	return &MalformedLogError{Reason: fmt.Sprintf(format, args...), Row: row}
}
