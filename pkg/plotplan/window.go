package plotplan

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseWindow parses the start and end of a window as typed by a user.
func ParseWindow(start, end string) (Window, error) {
	s, err := strconv.ParseFloat(strings.TrimSpace(start), 64)
	if err != nil {
		return Window{}, fmt.Errorf("plotplan: window start: %w", err)
	}
	e, err := strconv.ParseFloat(strings.TrimSpace(end), 64)
	if err != nil {
		return Window{}, fmt.Errorf("plotplan: window end: %w", err)
	}
	return Window{Start: s, End: e}, nil
}

// Bounds formats both ends for the viewer's time-range fields. The text
// parses back to exactly w, so an untouched field never narrows or widens
// the window.
func (w Window) Bounds() (start, end string) {
	return strconv.FormatFloat(w.Start, 'f', -1, 64), strconv.FormatFloat(w.End, 'f', -1, 64)
}
